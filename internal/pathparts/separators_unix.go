// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package pathparts

const separators = "/"
