package cargo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyCode(t *testing.T) {
	tests := []struct {
		name      string
		orderName string
		want      string
		wantErr   bool
	}{
		{name: "first order in range", orderName: "#212724", want: "RR0000000011B"},
		{name: "next order", orderName: "#212725", want: "RR0000000021B"},
		{name: "plain digits", orderName: "212725", want: "RR0000000021B"},
		{name: "larger order", orderName: "#213724", want: "RR0000010011B"},
		{name: "no digits", orderName: "#", wantErr: true},
		{name: "empty", orderName: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReplyCode(tt.orderName)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrackingTagRoundTrip(t *testing.T) {
	tag := TrackingTag{
		TrackingNumber: "12345",
		LineNumber:     "7",
		ReplyCode:      "RR0000000011B",
	}

	s := tag.String()
	assert.Equal(t, "Cargo Tracking:12345, LineNumber:7, RRcode:RR0000000011B", s)

	parsed, err := ParseTag(s)
	require.NoError(t, err)
	assert.Equal(t, tag, parsed)
}

func TestParseTagWithinTagCollection(t *testing.T) {
	// REST joins tags into one string; the tracking tag sits between others.
	tags := "vip, Cargo Tracking:98765, LineNumber:12, RRcode:RR0000000021B, wholesale"

	tag, err := ParseTag(tags)
	require.NoError(t, err)
	assert.Equal(t, "98765", tag.TrackingNumber)
	assert.Equal(t, "12", tag.LineNumber)
	assert.Equal(t, "RR0000000021B", tag.ReplyCode)
}

func TestParseTagMissingReplyCode(t *testing.T) {
	// Tags written before the reply code was recorded parse without it.
	tag, err := ParseTag("Cargo Tracking:555, LineNumber:3")
	require.NoError(t, err)
	assert.Equal(t, "555", tag.TrackingNumber)
	assert.Equal(t, "3", tag.LineNumber)
	assert.Empty(t, tag.ReplyCode)
}

func TestParseTagMalformed(t *testing.T) {
	tests := []struct {
		name string
		tags string
	}{
		{name: "no tracking marker", tags: "LineNumber:3, RRcode:RR0000000011B"},
		{name: "empty tracking value", tags: "Cargo Tracking:, LineNumber:3"},
		{name: "no line number", tags: "Cargo Tracking:555"},
		{name: "empty string", tags: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTag(tt.tags)
			assert.Error(t, err)
		})
	}
}

func TestHasTag(t *testing.T) {
	assert.True(t, HasTag("Cargo Tracking:555, LineNumber:3, RRcode:RR0000000011B"))
	assert.True(t, HasTag("vip, Cargo Tracking:555, LineNumber:3"))
	assert.False(t, HasTag("vip, wholesale"))
	assert.False(t, HasTag(""))
}
