package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/mock/gomock"

	"safety-ai/internal/handlers"
	"safety-ai/internal/handlers/mocks"
	"safety-ai/internal/incident"
)

func TestIncidentsHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEngine := mocks.NewMockEngine(ctrl)
	handler := handlers.NewIncidentsHandler(mockEngine)

	matches := []incident.Match{
		{Record: incident.Record{Number: "INC-001", Description: "gas leak"}, Score: 0.8},
	}

	tests := []struct {
		name       string
		body       string
		mockSetup  func()
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name: "successful lookup with defaults",
			body: `{"query": "gas leak"}`,
			mockSetup: func() {
				mockEngine.EXPECT().
					SimilarIncidents(gomock.Any(), "gas leak", 0, float32(incident.DefaultThreshold)).
					Return(matches, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp handlers.IncidentsResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if len(resp.Incidents) != 1 || resp.Incidents[0].Record.Number != "INC-001" {
					t.Errorf("response incidents = %+v", resp.Incidents)
				}
			},
		},
		{
			name: "explicit threshold passed through",
			body: `{"query": "gas leak", "k": 3, "threshold": 0.7}`,
			mockSetup: func() {
				mockEngine.EXPECT().
					SimilarIncidents(gomock.Any(), "gas leak", 3, float32(0.7)).
					Return(nil, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				// No matches serializes as an empty array, not null.
				if !bytes.Contains(body, []byte(`"incidents":[]`)) {
					t.Errorf("response body = %s, want empty incidents array", body)
				}
			},
		},
		{
			name:       "missing query is 400",
			body:       `{}`,
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body",
			body:       `{not json`,
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			rec := postJSON(t, handler, tt.body)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
		})
	}
}
