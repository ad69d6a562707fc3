package imagecard

import "strings"

// Google Drive sharing links don't serve image bytes directly; the
// thumbnail endpoint does. When a result URL looks like
// .../d/<FILE_ID>/..., the card prefers thumbnails and carries the
// full set of alternative links a viewer can fall back to.

// AlternativeLink is one named fallback link for a Drive-hosted image.
type AlternativeLink struct {
	Label string
	URL   string
}

// DriveFileID extracts the file ID from a Google Drive URL, or ""
// when the URL is not a Drive sharing link.
func DriveFileID(url string) string {
	if !strings.Contains(url, "drive.google.com") {
		return ""
	}
	_, after, found := strings.Cut(url, "/d/")
	if !found {
		return ""
	}
	id, _, _ := strings.Cut(after, "/")
	return id
}

func driveLargeThumbnail(fileID string) string {
	return "https://drive.google.com/thumbnail?id=" + fileID + "&sz=w2000"
}

func driveSmallThumbnail(fileID string) string {
	return "https://drive.google.com/thumbnail?id=" + fileID + "&sz=w1000"
}

func driveDirectView(fileID string) string {
	return "https://drive.google.com/uc?export=view&id=" + fileID
}

func drivePreview(fileID string) string {
	return "https://drive.google.com/file/d/" + fileID + "/preview"
}

// driveAlternativeLinks builds the named alternative links for a
// Drive file, in the order they should be offered.
func driveAlternativeLinks(fileID, originalURL string) []AlternativeLink {
	return []AlternativeLink{
		{Label: "Large Thumbnail", URL: driveLargeThumbnail(fileID)},
		{Label: "Small Thumbnail", URL: driveSmallThumbnail(fileID)},
		{Label: "Direct Link", URL: driveDirectView(fileID)},
		{Label: "Open in Google Drive", URL: originalURL},
		{Label: "Preview in Google Drive", URL: drivePreview(fileID)},
	}
}

// driveFallbackChain is the ordered list of URLs an image loader
// should try for a Drive file: large thumbnail, then small thumbnail,
// then the direct-view link. Each is tried once; after the last comes
// the failure placeholder. Non-Drive URLs get a single-entry chain.
func driveFallbackChain(fileID string) []string {
	return []string{
		driveLargeThumbnail(fileID),
		driveSmallThumbnail(fileID),
		driveDirectView(fileID),
	}
}
