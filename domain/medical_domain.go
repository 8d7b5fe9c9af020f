package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	MessageSuccessExtractMedical = "medical record extracted successfully"
	MessageFailedExtractMedical  = "failed to extract medical record"

	ErrEmptyDocument = errors.New("document is empty")
)

type (
	// PatientProfile is passed through to the master profile untouched.
	PatientProfile map[string]any

	MedicalRecord struct {
		PatientProfile PatientProfile `json:"patient_profile"`
		Conditions     []string       `json:"conditions"`
		Allergies      AllergyList    `json:"allergies"`
		Medications    []string       `json:"medications"`

		// Extra holds every other top-level key of the source document.
		Extra map[string]json.RawMessage `json:"-"`

		// RawAllergies keeps a grouped allergies object as it was written.
		RawAllergies json.RawMessage `json:"-"`
	}

	// AllergyList accepts either a flat list of allergens or the grouped
	// {"food": [...], "medications": [...], "environmental": [...]} shape
	// produced by the report extractor.
	AllergyList []string

	// ExtractionError is the Go form of the {"error": ...} object an
	// extraction collaborator returns instead of a document.
	ExtractionError struct {
		Message   string `json:"error"`
		RawOutput string `json:"raw_output,omitempty"`
		Cause     error  `json:"-"`
	}
)

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Message, e.Cause)
	}
	return "extraction failed: " + e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func (a *AllergyList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}

	if data[0] == '[' {
		var flat []string
		if err := json.Unmarshal(data, &flat); err != nil {
			return err
		}
		*a = flat
		return nil
	}

	var grouped struct {
		Food          []string `json:"food"`
		Medications   []string `json:"medications"`
		Environmental []string `json:"environmental"`
	}
	if err := json.Unmarshal(data, &grouped); err != nil {
		return err
	}
	out := make([]string, 0, len(grouped.Food)+len(grouped.Medications)+len(grouped.Environmental))
	out = append(out, grouped.Food...)
	out = append(out, grouped.Medications...)
	out = append(out, grouped.Environmental...)
	*a = out
	return nil
}

var medicalRecordKeys = map[string]bool{
	"patient_profile": true,
	"conditions":      true,
	"allergies":       true,
	"medications":     true,
}

func (r *MedicalRecord) UnmarshalJSON(data []byte) error {
	type plain MedicalRecord
	var record plain
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, raw := range fields {
		if medicalRecordKeys[key] {
			continue
		}
		if record.Extra == nil {
			record.Extra = map[string]json.RawMessage{}
		}
		record.Extra[key] = raw
	}
	if raw := bytes.TrimSpace(fields["allergies"]); len(raw) > 0 && raw[0] == '{' {
		record.RawAllergies = raw
	}

	*r = MedicalRecord(record)
	return nil
}

// MarshalJSON writes the four known keys first, then the remaining source
// keys in sorted order. A grouped allergies object is written back as is.
func (r MedicalRecord) MarshalJSON() ([]byte, error) {
	var allergies any = r.Allergies
	if len(r.RawAllergies) > 0 {
		allergies = r.RawAllergies
	}

	keys := []string{"patient_profile", "conditions", "allergies", "medications"}
	values := []any{r.PatientProfile, r.Conditions, allergies, r.Medications}

	extra := make([]string, 0, len(r.Extra))
	for key := range r.Extra {
		extra = append(extra, key)
	}
	sort.Strings(extra)
	for _, key := range extra {
		keys = append(keys, key)
		values = append(values, r.Extra[key])
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ConditionSet returns the normalized conditions used for rule matching.
func (r MedicalRecord) ConditionSet() ConditionSet {
	return NewConditionSet(r.Conditions)
}

// Normalized returns a copy with nil collections replaced by empty ones so
// the record always serializes as {} / [] rather than null.
func (r MedicalRecord) Normalized() MedicalRecord {
	out := MedicalRecord{
		PatientProfile: r.PatientProfile,
		Conditions:     append([]string{}, r.Conditions...),
		Allergies:      append(AllergyList{}, r.Allergies...),
		Medications:    append([]string{}, r.Medications...),
		Extra:          r.Extra,
		RawAllergies:   r.RawAllergies,
	}
	if out.PatientProfile == nil {
		out.PatientProfile = PatientProfile{}
	}
	return out
}

// DecodeMedicalRecord parses a medical record document. An extractor error
// object is reported as *ExtractionError and never decoded as a record.
func DecodeMedicalRecord(data []byte) (MedicalRecord, error) {
	var record MedicalRecord
	if err := decodeDocument(data, &record); err != nil {
		return MedicalRecord{}, err
	}
	return record.Normalized(), nil
}

func decodeDocument(data []byte, dst any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &ValidationError{Reason: "document is empty", Cause: ErrEmptyDocument}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return &ValidationError{Reason: "document is not a JSON object", Cause: err}
	}
	if raw, ok := probe["error"]; ok {
		extErr := &ExtractionError{}
		if err := json.Unmarshal(data, extErr); err != nil || extErr.Message == "" {
			extErr.Message = string(raw)
		}
		return extErr
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return &ValidationError{Reason: err.Error(), Cause: err}
	}
	return nil
}
