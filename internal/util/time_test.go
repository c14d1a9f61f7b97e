package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTimeProvider(t *testing.T) {
	// Reset global provider before tests
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()

	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "local timezone",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "UTC timezone",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone Asia/Shanghai",
			timezone: "Asia/Shanghai",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
		{
			name:     "empty timezone defaults to Local",
			timezone: "",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, globalTimeProvider)
			}
		})
	}
}

func TestGetTimeProvider(t *testing.T) {
	// Reset global provider
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()

	// First call should initialize with Local timezone
	provider := GetTimeProvider()
	assert.NotNil(t, provider)

	// Second call should return the same instance
	provider2 := GetTimeProvider()
	assert.Equal(t, provider, provider2)
}

func TestTimeProvider_SetTimezone(t *testing.T) {
	provider := &TimeProvider{}

	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "set to UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "set to Asia/Tokyo",
			timezone: "Asia/Tokyo",
			wantErr:  false,
		},
		{
			name:     "set to Local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "empty string defaults to Local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Not/A/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := provider.SetTimezone(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeProvider_Location(t *testing.T) {
	provider := &TimeProvider{}
	err := provider.SetTimezone("UTC")
	require.NoError(t, err)

	loc := provider.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "UTC", loc.String())

	// Timestamps built in the provider's location compare equal as map keys
	ts1 := time.Date(2024, 11, 6, 6, 0, 0, 0, provider.Location())
	ts2 := time.Date(2024, 11, 6, 6, 0, 0, 0, provider.Location())
	m := map[time.Time]float64{ts1: 70.5}
	_, ok := m[ts2]
	assert.True(t, ok)
}

func TestTimeProvider_Now(t *testing.T) {
	provider := &TimeProvider{}

	err := provider.SetTimezone("UTC")
	require.NoError(t, err)

	before := time.Now().UTC()
	now := provider.Now()
	after := time.Now().UTC()

	assert.True(t, now.After(before) || now.Equal(before))
	assert.True(t, now.Before(after) || now.Equal(after))
	assert.Equal(t, "UTC", now.Location().String())
}

func TestTimeProvider_In(t *testing.T) {
	provider := &TimeProvider{}

	err := provider.SetTimezone("Asia/Shanghai")
	require.NoError(t, err)

	utcTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	shanghaiTime := provider.In(utcTime)

	// Same instant, different zone; Shanghai is UTC+8
	assert.True(t, utcTime.Equal(shanghaiTime))
	assert.Equal(t, "Asia/Shanghai", shanghaiTime.Location().String())
	assert.Equal(t, 20, shanghaiTime.Hour())
}

func TestTimeProvider_Format(t *testing.T) {
	provider := &TimeProvider{}

	err := provider.SetTimezone("UTC")
	require.NoError(t, err)

	testTime := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name     string
		layout   string
		expected string
	}{
		{
			name:     "RFC3339",
			layout:   time.RFC3339,
			expected: "2024-03-15T14:30:45Z",
		},
		{
			name:     "date only",
			layout:   "2006-01-02",
			expected: "2024-03-15",
		},
		{
			name:     "time only",
			layout:   "15:04:05",
			expected: "14:30:45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := provider.Format(testTime, tt.layout)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTimeProvider_FormatNow(t *testing.T) {
	provider := &TimeProvider{}

	err := provider.SetTimezone("UTC")
	require.NoError(t, err)

	result := provider.FormatNow("2006-01-02 15:04:05")
	assert.NotEmpty(t, result)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, result)
}

func TestInitializeTimeProvider_ErrorMessage(t *testing.T) {
	err := InitializeTimeProvider("Invalid/Zone")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "invalid timezone 'Invalid/Zone'")
	assert.Contains(t, err.Error(), "Valid examples:")
	assert.Contains(t, err.Error(), "America/New_York")
}
