package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
)

func (s *E2ETestSuite) Test40_CreateCollection() {
	reqBody := map[string]interface{}{
		"name": "great wallpapers",
		"query": []map[string]interface{}{
			{"field": "rating", "op": "gte", "value": 4},
			{"field": "ineligible_for_wallpaper", "op": "eq", "value": false},
		},
	}
	resp, body := s.request("POST", "/collections", reqBody)
	s.Equal(http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	s.createdCollectionID = int(data["id"].(float64))
}

func (s *E2ETestSuite) Test41_CreateCollectionIsIdempotentByName() {
	reqBody := map[string]interface{}{
		"name":  "great wallpapers",
		"query": []map[string]interface{}{},
	}
	resp, body := s.request("POST", "/collections", reqBody)
	s.Equal(http.StatusCreated, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	s.Equal(s.createdCollectionID, int(data["id"].(float64)))
}

func (s *E2ETestSuite) Test42_CreateCollectionRejectsBadPredicate() {
	reqBody := map[string]interface{}{
		"name": "sneaky",
		"query": []map[string]interface{}{
			{"field": "folder", "op": "regex", "value": "; DROP TABLE photos;"},
		},
	}
	resp, _ := s.request("POST", "/collections", reqBody)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *E2ETestSuite) Test43_ListPhotosByCollection() {
	if s.createdCollectionID == 0 {
		s.T().Skip("collection not created")
	}
	resp, _ := s.request("GET", "/photos?collection_id="+itoa(s.createdCollectionID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *E2ETestSuite) Test44_UpdateAndDeleteCollection() {
	if s.createdCollectionID == 0 {
		s.T().Skip("collection not created")
	}
	newName := "renamed wallpapers"
	resp, _ := s.request("PATCH", "/collections/"+itoa(s.createdCollectionID),
		map[string]interface{}{"name": newName})
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.request("DELETE", "/collections/"+itoa(s.createdCollectionID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.request("GET", "/collections/"+itoa(s.createdCollectionID), nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *E2ETestSuite) Test45_ConcurrentCreateCollectionSharesOneRow() {
	// Two racing creates of the same name must both succeed and agree on
	// the row instead of one losing to the unique constraint.
	type outcome struct {
		status int
		id     int
	}
	results := make(chan outcome, 2)
	payload := []byte(`{"name": "race pick", "query": []}`)
	for i := 0; i < 2; i++ {
		go func() {
			resp, err := http.Post(s.baseURL+"/collections", "application/json", bytes.NewReader(payload))
			if err != nil {
				results <- outcome{}
				return
			}
			defer resp.Body.Close()
			var decoded struct {
				Data struct {
					ID int `json:"id"`
				} `json:"data"`
			}
			_ = json.NewDecoder(resp.Body).Decode(&decoded)
			results <- outcome{status: resp.StatusCode, id: decoded.Data.ID}
		}()
	}

	first, second := <-results, <-results
	s.Equal(http.StatusCreated, first.status)
	s.Equal(http.StatusCreated, second.status)
	s.Equal(first.id, second.id)

	resp, _ := s.request("DELETE", "/collections/"+itoa(first.id), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *E2ETestSuite) Test50_TagLifecycle() {
	resp, body := s.request("POST", "/tags", map[string]interface{}{"name": "sunset"})
	s.Equal(http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	s.createdTagID = int(data["id"].(float64))

	resp, _ = s.request("GET", "/tags", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp, _ = s.request("DELETE", "/tags/"+itoa(s.createdTagID), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}
