package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  Window
		wantErr error
	}{
		{
			name:   "valid business day",
			window: Window{Weekday: time.Monday, OpenMin: 9 * 60, CloseMin: 17 * 60},
		},
		{
			name:   "full day",
			window: Window{Weekday: time.Saturday, OpenMin: 0, CloseMin: 24 * 60},
		},
		{
			name:    "open after close",
			window:  Window{Weekday: time.Monday, OpenMin: 17 * 60, CloseMin: 9 * 60},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "zero-length window",
			window:  Window{Weekday: time.Monday, OpenMin: 9 * 60, CloseMin: 9 * 60},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "close past midnight",
			window:  Window{Weekday: time.Monday, OpenMin: 9 * 60, CloseMin: 25 * 60},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "negative open",
			window:  Window{Weekday: time.Monday, OpenMin: -1, CloseMin: 17 * 60},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "weekday out of range",
			window:  Window{Weekday: 7, OpenMin: 9 * 60, CloseMin: 17 * 60},
			wantErr: ErrInvalidDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
