// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tfsweep/internal/meta"
)

const bashCompletionScript = `# bash completion for tfsweep
_tfsweep()
{
    local cur prev
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    local opts="--dry-run -n --yes -y --bucket -b --root -r --suffix -s --template -t
        --cleanup-empty -e --cleanup-orphan -o --cleanup-extra -x --cleanup-all -a
        --download -d --no-instances -i --state-file --provider --region --profile
        --endpoint --credentials --access-key --secret-key --passphrase --filter -f --summary --cache-hours
        --color -c --output --titles --version -v --help"

    case "$prev" in
        --output)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --provider)
            COMPREPLY=( $(compgen -W "gs s3 file" -- "$cur") )
            return 0
            ;;
        --root|-r|--download|-d)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
        --credentials)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
        --template|-t)
            COMPREPLY=( $(compgen -W "$(tfsweep templates --output yaml 2>/dev/null | sed -n 's/^ *name: //p')" -- "$cur") )
            return 0
            ;;
    esac

    if [[ ${COMP_CWORD} -eq 1 && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -W "templates completion" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _tfsweep tfsweep
`

const zshCompletionScript = `#compdef tfsweep

_tfsweep() {
  local -a cmds
  cmds=(
    'templates:list the named bucket/root/suffix presets'
    'completion:generate shell completion script'
  )

  if (( CURRENT == 2 )) && [[ $words[2] != -* ]]; then
    _describe -t commands 'tfsweep commands' cmds
    return
  fi

  _arguments -C \
    '(-n --dry-run)'{-n,--dry-run}'[report only]' \
    '(-y --yes)'{-y,--yes}'[delete without asking]' \
    '(-b --bucket)'{-b,--bucket}'[state bucket]:bucket' \
    '(-r --root)'{-r,--root}'[local repo root]:root:_directories' \
    '(-s --suffix)'{-s,--suffix}'[path suffix]:suffix' \
    '(-t --template)'{-t,--template}'[named preset]:template' \
    '(-e --cleanup-empty)'{-e,--cleanup-empty}'[empty states]' \
    '(-o --cleanup-orphan)'{-o,--cleanup-orphan}'[orphaned states]' \
    '(-x --cleanup-extra)'{-x,--cleanup-extra}'[non-state objects]' \
    '(-a --cleanup-all)'{-a,--cleanup-all}'[all cleanups]' \
    '(-d --download)'{-d,--download}'[download dir]:dir:_directories' \
    '(-i --no-instances)'{-i,--no-instances}'[report instance-less states]' \
    '--state-file[state file name]:name' \
    '--provider[default scheme]:provider:(gs s3 file)' \
    '--region[S3 region]:region' \
    '--profile[AWS profile]:profile' \
    '--endpoint[storage endpoint]:url' \
    '--credentials[GCS credentials file]:file:_files' \
    '--access-key[static S3 access key]:key' \
    '--secret-key[static S3 secret key]:key' \
    '--passphrase[encrypted state passphrase]:passphrase' \
    '(-f --filter)'{-f,--filter}'[object filters]:filters' \
    '--summary[print per-pass counts]' \
    '--cache-hours[cache purge age]:hours' \
    '(-c --color)'{-c,--color}'[enable colored text]' \
    '--output[output format]:format:(text json yaml)' \
    '--titles[show titles]'
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tfsweep tfsweep
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	w := writer(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		return fmt.Errorf("usage: tfsweep completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tfsweep completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
