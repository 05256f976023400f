// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package state inspects Terraform/OpenTofu state documents fetched from a
// bucket. It answers two questions, whether the state holds any resources and
// whether every resource is without instances, and transparently decrypts
// OpenTofu pbkdf2/AES-GCM encrypted states first.
package state
