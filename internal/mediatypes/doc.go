// Package mediatypes provides shared type definitions and utilities for media
// file handling across the media scan service.
//
// This package exists as a dependency-free foundation that can be imported by
// other packages without creating import cycles. It contains primitive types,
// constants, and pure utility functions with no external dependencies beyond
// the standard library.
//
// # File Types
//
// The package defines a FileType enum for categorizing media files:
//
//	mediatypes.FileTypeImage // Supported image formats (png, jpg, jpeg, gif, heic)
//	mediatypes.FileTypeVideo // Supported video formats (mp4, mkv, webm, mov)
//	mediatypes.FileTypeAudio // Supported audio formats (mp3, opus, m4a)
//	mediatypes.FileTypeOther // Unrecognized or unsupported files
//
// # Extension Detection
//
// Use GetFileType to determine the type of a file based on its extension:
//
//	ext := strings.ToLower(filepath.Ext(filename))
//	fileType := mediatypes.GetFileType(ext)
//
// Only files for which IsMediaFile reports true are picked up by the scanner;
// everything else is silently skipped.
//
// # MIME Types
//
// Use GetMimeType to get the appropriate MIME type for HTTP responses:
//
//	mimeType := mediatypes.GetMimeType(ext) // e.g., "image/jpeg"
package mediatypes
