package handlers

import "net/http"

func (s *E2ETestSuite) Test10_Health() {
	resp, body := s.request("GET", "/health", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("ok", body["status"])
	s.Equal("scarlett-api", body["service"])
}

func (s *E2ETestSuite) Test20_ListPhotosDefaultPage() {
	resp, body := s.request("GET", "/photos", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(true, body["success"])

	data := body["data"].(map[string]interface{})
	meta := data["metadata"].(map[string]interface{})
	s.Equal(float64(1), meta["page"])
	s.Equal(float64(20), meta["pageSize"])

	links := data["links"].(map[string]interface{})
	s.Empty(links["first"])
	s.Empty(links["previous"])
	s.NotEmpty(links["current"])
}

func (s *E2ETestSuite) Test21_ListPhotosSorted() {
	resp, _ := s.request("GET", "/photos?sort_by=-rating,date_created&page_size=10", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *E2ETestSuite) Test22_ListPhotosUnknownSortFieldIsClientError() {
	resp, body := s.request("GET", "/photos?sort_by=file_hash", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	errObj := body["error"].(map[string]interface{})
	s.Equal("VALIDATION_ERROR", errObj["code"])
}

func (s *E2ETestSuite) Test23_ListPhotosUnknownCollectionIs404() {
	resp, _ := s.request("GET", "/photos?collection_id=999999", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *E2ETestSuite) Test24_GetUnknownPhotoIs404() {
	resp, _ := s.request("GET", "/photos/999999", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *E2ETestSuite) Test25_ScanRejectsFolderOutsideLibrary() {
	resp, body := s.request("GET", "/scan?folder=../outside", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	errObj := body["error"].(map[string]interface{})
	s.Equal("VALIDATION_ERROR", errObj["code"])
}

func (s *E2ETestSuite) Test30_ResetOrdering() {
	resp, body := s.request("POST", "/resetseed", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	s.Contains(data["message"], "rebuilt")
}
