package estatecalculator

import (
	"encoding/json"
	"testing"

	"github.com/c360studio/faraid/catalog"
	"github.com/c360studio/faraid/engine"
)

func TestComputeRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ComputeRequest
		wantErr bool
	}{
		{
			name: "valid",
			req: ComputeRequest{
				RequestID: "req-1",
				Input: engine.Input{
					EstateValue: 1000,
					Heirs:       []engine.Heir{{Name: "son", Count: 1}},
				},
			},
		},
		{
			name: "missing request id",
			req: ComputeRequest{
				Input: engine.Input{
					EstateValue: 1000,
					Heirs:       []engine.Heir{{Name: "son", Count: 1}},
				},
			},
			wantErr: true,
		},
		{
			name:    "empty input",
			req:     ComputeRequest{RequestID: "req-2"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestComputeRequestRoundTrip(t *testing.T) {
	raw := `{"request_id":"req-42","input":{"estate_value":120000,"heirs":[{"name":"wife","count":1},{"name":"son","count":2}]}}`

	var req ComputeRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.RequestID != "req-42" {
		t.Errorf("request_id = %q, want req-42", req.RequestID)
	}
	if len(req.Input.Heirs) != 2 {
		t.Fatalf("expected 2 heirs, got %d", len(req.Input.Heirs))
	}

	report, err := engine.Compute(req.Input, catalog.Default())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if report.Status != engine.StatusBalanced {
		t.Errorf("status = %s, want %s", report.Status, engine.StatusBalanced)
	}
}

func TestClassifyEngineError(t *testing.T) {
	snap := catalog.Default()

	tests := []struct {
		name     string
		input    engine.Input
		wantCode string
	}{
		{
			name:     "insolvent estate",
			input:    engine.Input{EstateValue: -1, Heirs: []engine.Heir{{Name: "son", Count: 1}}},
			wantCode: "insolvent_estate",
		},
		{
			name:     "no heirs",
			input:    engine.Input{EstateValue: 1000},
			wantCode: "no_heirs",
		},
		{
			name:     "unknown heir type",
			input:    engine.Input{EstateValue: 1000, Heirs: []engine.Heir{{Name: "step_uncle", Count: 1}}},
			wantCode: "unknown_heir_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Compute(tt.input, snap)
			if err == nil {
				t.Fatal("expected compute error")
			}
			ce := classifyEngineError(err)
			if ce.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", ce.Code, tt.wantCode)
			}
			if ce.Detail == "" {
				t.Error("detail should not be empty")
			}
		})
	}
}
