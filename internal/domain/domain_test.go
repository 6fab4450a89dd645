package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateInterviewConfig_ApplyOverlaysOnlyGivenFields(t *testing.T) {
	c := &InterviewConfig{
		ConfigID:        "c-1",
		EnterpriseID:    "e-1",
		DurationMinutes: 30,
		NumQuestions:    5,
		ComplexityLevel: 2,
		ValidityHours:   24,
	}

	var in UpdateInterviewConfig
	require.NoError(t, json.Unmarshal([]byte(`{"duration_minutes":45}`), &in))
	in.Apply(c)

	assert.Equal(t, 45, c.DurationMinutes)
	assert.Equal(t, 5, c.NumQuestions)
	assert.Equal(t, 2, c.ComplexityLevel)
	assert.Equal(t, "e-1", c.EnterpriseID)
	assert.Equal(t, "c-1", c.ConfigID)
}

func TestCreateInterview_BuildDefaultsStatus(t *testing.T) {
	exp := DateTime(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	in := CreateInterview{ApplicationID: "a", ConfigID: "c", ExpirationDate: &exp}

	i := in.Build()
	assert.Equal(t, StatusPending, i.Status)
	assert.Equal(t, time.Time(exp), i.ExpirationDate)
	assert.Nil(t, i.ScheduledDate)

	s := StatusScheduled
	in.Status = &s
	assert.Equal(t, StatusScheduled, in.Build().Status)
}

func TestUpdateInterview_ApplyCopiesPointers(t *testing.T) {
	url := "https://cdn.example.com/v.mp4"
	in := UpdateInterview{VideoRecordingURL: &url}
	i := &Interview{Status: StatusPending}
	in.Apply(i)

	require.NotNil(t, i.VideoRecordingURL)
	assert.Equal(t, url, *i.VideoRecordingURL)
	url = "changed"
	assert.Equal(t, "https://cdn.example.com/v.mp4", *i.VideoRecordingURL)
	assert.Equal(t, StatusPending, i.Status)
}

func TestUpdateInterviewReport_Apply(t *testing.T) {
	r := &InterviewReport{OverallScore: 50, CompanyReport: JSONObject{"a": 1.0}}
	var in UpdateInterviewReport
	require.NoError(t, json.Unmarshal([]byte(`{"candidate_report":{"b":true}}`), &in))
	in.Apply(r)

	assert.Equal(t, 50.0, r.OverallScore)
	assert.Equal(t, JSONObject{"a": 1.0}, r.CompanyReport)
	assert.Equal(t, JSONObject{"b": true}, r.CandidateReport)
}

func TestFlexInt(t *testing.T) {
	var in UpdateRating
	require.NoError(t, json.Unmarshal([]byte(`{"rating":"4"}`), &in))
	assert.Equal(t, FlexInt(4), in.Rating)

	require.NoError(t, json.Unmarshal([]byte(`{"rating":3}`), &in))
	assert.Equal(t, FlexInt(3), in.Rating)

	assert.Error(t, json.Unmarshal([]byte(`{"rating":"four"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"rating":2.5}`), &in))
}

func TestJSONObject_ValueScan(t *testing.T) {
	v, err := JSONObject{"score": 90.0}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":90}`, v.(string))

	v, err = JSONObject(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	var o JSONObject
	require.NoError(t, o.Scan([]byte(`{"k":"v"}`)))
	assert.Equal(t, JSONObject{"k": "v"}, o)

	require.NoError(t, o.Scan(nil))
	assert.Nil(t, o)

	assert.Error(t, o.Scan(42))
}

func TestCreateInterview_BuildStoresUTCMicroseconds(t *testing.T) {
	var in CreateInterview
	require.NoError(t, json.Unmarshal([]byte(`{
		"application_id": "a",
		"config_id": "c",
		"scheduled_date": "2030-01-01T10:00:00.123456789+02:00",
		"expiration_date": "2030-01-02T10:00:00.5+02:00"
	}`), &in))

	i := in.Build()
	require.NotNil(t, i.ScheduledDate)
	assert.Equal(t, time.Date(2030, 1, 1, 8, 0, 0, 123456000, time.UTC), *i.ScheduledDate)
	assert.Equal(t, time.Date(2030, 1, 2, 8, 0, 0, 500000000, time.UTC), i.ExpirationDate)

	var up UpdateInterview
	require.NoError(t, json.Unmarshal([]byte(`{"expiration_date":"2030-02-01T00:00:00.0000019-05:00"}`), &up))
	up.Apply(i)
	assert.Equal(t, time.Date(2030, 2, 1, 5, 0, 0, 1000, time.UTC), i.ExpirationDate)
	assert.Equal(t, time.Date(2030, 1, 1, 8, 0, 0, 123456000, time.UTC), *i.ScheduledDate)
}

func TestReportScore_RoundsToColumnPrecision(t *testing.T) {
	score := 92.348
	r := (&CreateInterviewReport{InterviewID: "i", OverallScore: &score}).Build()
	assert.Equal(t, 92.35, r.OverallScore)

	score = 40.001
	(&UpdateInterviewReport{OverallScore: &score}).Apply(r)
	assert.Equal(t, 40.0, r.OverallScore)

	assert.Equal(t, 87.0, Score(87))
}

func TestDateTime_AcceptsISODates(t *testing.T) {
	var in CreateInterview
	require.NoError(t, json.Unmarshal([]byte(`{"expiration_date":"2030-01-01","scheduled_date":null}`), &in))
	assert.Nil(t, in.ScheduledDate)
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), in.Build().ExpirationDate)

	for _, bad := range []string{`"01/02/2030"`, `"2030-13-01"`, `20300101`} {
		assert.Error(t, json.Unmarshal([]byte(`{"expiration_date":`+bad+`}`), &in), bad)
	}
}
