// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import "github.com/pdiddy/eutils/pkg/types"

// DefaultPreferences is written to disk when no preferences file exists.
func DefaultPreferences() types.Preferences {
	return types.Preferences{
		WarnDangerous: true,
		FileFormats: []types.FileFormat{
			{
				Name:    "image",
				Members: []string{".png", ".jpg", ".jpeg", ".webp"},
				Transformations: [][]string{
					{"image", "magick {s} {e}"},
				},
			},
			{
				Name:    "video",
				Members: []string{".mp4", ".mov", ".avi", ".mkv"},
				Transformations: [][]string{
					{"video", "ffmpeg -i {s} {e}"},
				},
			},
		},
	}
}
