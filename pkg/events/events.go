package events

// ScanCompleted is emitted when a filesystem scan finishes.
// This struct is intentionally small and versionable; changes should be additive.
type ScanCompleted struct {
	Type          string `json:"type"`
	NewPhotos     int    `json:"newPhotos"`
	UpdatedPhotos int    `json:"updatedPhotos"`
	DeletedPhotos int    `json:"deletedPhotos"`
}

// NewScanCompleted tags the event with its type name.
func NewScanCompleted(newPhotos, updated, deleted int) ScanCompleted {
	return ScanCompleted{
		Type:          "scan.completed",
		NewPhotos:     newPhotos,
		UpdatedPhotos: updated,
		DeletedPhotos: deleted,
	}
}

// OrderingReset is emitted after the shuffle ordering has been rebuilt,
// so browsing clients know their pagination state is stale.
type OrderingReset struct {
	Type string `json:"type"`
}

func NewOrderingReset() OrderingReset {
	return OrderingReset{Type: "ordering.reset"}
}
