package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2021-07")
	require.NoError(t, err)
	assert.Equal(t, NewYearMonth(2021, time.July), ym)
	assert.Equal(t, "2021-07", ym.String())

	zero, err := ParseYearMonth("")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())

	_, err = ParseYearMonth("07/2021")
	assert.Error(t, err)
}

func TestYearMonth_MonthsUntil(t *testing.T) {
	start := NewYearMonth(2020, time.November)
	end := NewYearMonth(2022, time.February)

	assert.Equal(t, 15, start.MonthsUntil(end))
	assert.Equal(t, -15, end.MonthsUntil(start))
	assert.True(t, start.Before(end))
	assert.False(t, end.Before(start))
}

func TestYearMonth_JSON(t *testing.T) {
	exp := Experience{Title: "Dev", Start: NewYearMonth(2019, time.March)}

	data, err := json.Marshal(exp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"start":"2019-03"`)
	assert.NotContains(t, string(data), `"end"`)

	var decoded Experience
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Dev","start":"2019-03","end":"2020-01"}`), &decoded))
	require.NotNil(t, decoded.End)
	assert.Equal(t, NewYearMonth(2020, time.January), *decoded.End)

	assert.Error(t, json.Unmarshal([]byte(`{"start":2019}`), &decoded))
}

func TestExperience_EndOrNow(t *testing.T) {
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	end := NewYearMonth(2024, time.May)

	assert.Equal(t, NewYearMonth(2026, time.October), Experience{Ongoing: true, End: &end}.EndOrNow(now))
	assert.Equal(t, NewYearMonth(2026, time.October), Experience{}.EndOrNow(now))
	assert.Equal(t, end, Experience{End: &end}.EndOrNow(now))
}

func TestTemplate_Validate(t *testing.T) {
	valid := Template{Locale: LocaleDE, Style: StyleEnhanced, Compliant: true}
	assert.NoError(t, valid.Validate())

	invalid := Template{Locale: "fr", Style: StyleFormal}
	assert.Error(t, invalid.Validate())

	missing := Template{Locale: LocaleEN}
	assert.Error(t, missing.Validate())
}
