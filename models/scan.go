package models

// ScanResult summarizes one filesystem scan run for the API response.
type ScanResult struct {
	NewPhotosFound bool `json:"newPhotosFound"`
	NewPhotos      int  `json:"newPhotos"`
	UpdatedPhotos  int  `json:"updatedPhotos"`
	DeletedPhotos  int  `json:"deletedPhotos"`
}

// NewScanResult builds a ScanResult from the three scanner counts.
func NewScanResult(newPhotos, updatedPhotos, deletedPhotos int) ScanResult {
	return ScanResult{
		NewPhotosFound: newPhotos > 0,
		NewPhotos:      newPhotos,
		UpdatedPhotos:  updatedPhotos,
		DeletedPhotos:  deletedPhotos,
	}
}
