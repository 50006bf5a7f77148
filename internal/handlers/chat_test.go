package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/mock/gomock"

	"safety-ai/internal/handlers"
	"safety-ai/internal/handlers/mocks"
	"safety-ai/internal/rag"
)

func TestChatHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEngine := mocks.NewMockEngine(ctrl)
	handler := handlers.NewChatHandler(mockEngine)

	tests := []struct {
		name       string
		body       string
		mockSetup  func()
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name: "successful chat",
			body: `{"session_id": "s1", "message": "how do I isolate a valve"}`,
			mockSetup: func() {
				mockEngine.EXPECT().
					Chat(gomock.Any(), rag.ChatRequest{SessionID: "s1", Message: "how do I isolate a valve"}).
					Return(rag.ChatResponse{
						SessionID: "s1",
						Answer:    "Close the upstream valve first.",
						Sources:   []string{"valves.txt"},
					}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp rag.ChatResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Answer != "Close the upstream valve first." {
					t.Errorf("response answer = %q", resp.Answer)
				}
				if len(resp.Sources) != 1 || resp.Sources[0] != "valves.txt" {
					t.Errorf("response sources = %v", resp.Sources)
				}
			},
		},
		{
			name: "missing session id gets one assigned",
			body: `{"message": "hello"}`,
			mockSetup: func() {
				mockEngine.EXPECT().
					Chat(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req rag.ChatRequest) (rag.ChatResponse, error) {
						if req.SessionID == "" {
							t.Error("handler passed empty session id to engine")
						}
						return rag.ChatResponse{SessionID: req.SessionID, Answer: "hi"}, nil
					})
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var resp rag.ChatResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.SessionID == "" {
					t.Error("response has no session id")
				}
			},
		},
		{
			name:       "invalid body",
			body:       `{not json`,
			mockSetup:  func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "validation error maps to 400",
			body: `{"session_id": "s1", "message": ""}`,
			mockSetup: func() {
				mockEngine.EXPECT().
					Chat(gomock.Any(), gomock.Any()).
					Return(rag.ChatResponse{}, &rag.ValidationError{Field: "message", Message: "cannot be empty"})
			},
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

func TestClearHandler_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEngine := mocks.NewMockEngine(ctrl)
	handler := handlers.NewClearHandler(mockEngine)

	tests := []struct {
		name        string
		body        string
		mockSetup   func()
		wantStatus  int
		wantCleared bool
	}{
		{
			name: "live session cleared",
			body: `{"session_id": "s1"}`,
			mockSetup: func() {
				mockEngine.EXPECT().ClearSession("s1").Return(true)
			},
			wantStatus:  http.StatusOK,
			wantCleared: true,
		},
		{
			name: "unknown session is 404",
			body: `{"session_id": "missing"}`,
			mockSetup: func() {
				mockEngine.EXPECT().ClearSession("missing").Return(false)
			},
			wantStatus:  http.StatusNotFound,
			wantCleared: false,
		},
		{
			name:       "missing session id is 400",
			body:       `{}`,
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
			if tt.wantStatus == http.StatusBadRequest {
				return
			}

			var resp handlers.ClearResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Cleared != tt.wantCleared {
				t.Errorf("cleared = %v, want %v", resp.Cleared, tt.wantCleared)
			}
		})
	}
}
