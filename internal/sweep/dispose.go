// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package sweep

import (
	"context"
	"fmt"

	"github.com/tfctl/tfsweep/internal/bucket"
	"github.com/tfctl/tfsweep/internal/log"
	"github.com/tfctl/tfsweep/internal/policy"
)

// Label is the report label of mode, capitalized for report lines.
func Label(mode policy.Mode) string {
	switch mode {
	case policy.Empty:
		return "Empty state"
	case policy.Orphan:
		return "Obsolete state"
	case policy.Extra:
		return "Extra object"
	default:
		return mode.String()
	}
}

// promptLabel is the lower-case label used mid-sentence.
func promptLabel(mode policy.Mode) string {
	switch mode {
	case policy.Empty:
		return "empty state"
	case policy.Orphan:
		return "obsolete state"
	case policy.Extra:
		return "extra object"
	default:
		return mode.String()
	}
}

// dispose applies the run policy to a matched object. Dry run wins over
// auto-confirm, which wins over asking.
func (e *Engine) dispose(ctx context.Context, pass *Pass, obj bucket.Object) error {
	created := obj.Created.Format(DateFormat)

	switch {
	case e.Config.DryRun:
		fmt.Fprintf(e.Out, "%s: \"%s\" (created: %s)\n", Label(pass.Mode), obj.Name, created)
		return nil

	case e.Config.Yes:
		if err := e.delete(ctx, obj); err != nil {
			return err
		}
		pass.Deleted++
		pass.Freed += obj.Size
		fmt.Fprintf(e.Out, "%s \"%s\" (created: %s) deleted\n", Label(pass.Mode), obj.Name, created)
		return nil
	}

	question := fmt.Sprintf("Delete %s \"%s\" (created: %s) [y/N]? ", promptLabel(pass.Mode), obj.Name, created)
	ok, err := e.Prompter.Confirm(question)
	if err != nil {
		return fmt.Errorf("failed to confirm %s: %w", obj.Name, err)
	}
	if !ok {
		pass.Skipped++
		fmt.Fprintln(e.Out, "Skipped")
		return nil
	}

	if err := e.delete(ctx, obj); err != nil {
		return err
	}
	pass.Deleted++
	pass.Freed += obj.Size
	fmt.Fprintln(e.Out, "Deleted")
	return nil
}

func (e *Engine) delete(ctx context.Context, obj bucket.Object) error {
	if err := e.Bucket.Delete(ctx, obj); err != nil {
		return fmt.Errorf("failed to delete %s: %w", obj.Name, err)
	}
	log.Infof("deleted %s from %s", obj.Name, e.Bucket.Name())
	return nil
}
