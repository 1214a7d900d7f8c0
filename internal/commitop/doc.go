// SPDX-License-Identifier: MPL-2.0

// Package commitop wraps a repository mutation so that, on request, exactly
// the changes it makes end up in their own commit.
package commitop
