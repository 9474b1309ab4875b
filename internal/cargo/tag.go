package cargo

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker identifies a cargo tracking tag inside an order's tag collection.
// At most one tracking tag exists per order; its absence means the order has
// not been shipped through this app.
const Marker = "Cargo"

const (
	trackingPrefix = "Cargo Tracking:"
	linePrefix     = "LineNumber:"
	replyPrefix    = "RRcode:"
)

// TrackingTag is the shipment triple encoded into an order tag as
// "Cargo Tracking:<num>, LineNumber:<line>, RRcode:<rr>".
type TrackingTag struct {
	TrackingNumber string
	LineNumber     string
	ReplyCode      string
}

// String formats the tag for tagsAdd. ParseTag inverts it.
func (t TrackingTag) String() string {
	return trackingPrefix + t.TrackingNumber + ", " + linePrefix + t.LineNumber + ", " + replyPrefix + t.ReplyCode
}

// HasTag reports whether a tag collection already carries a tracking tag.
// The REST API joins tags into one comma-separated string, so detection is a
// substring search on the whole collection.
func HasTag(tags string) bool {
	return strings.Contains(tags, Marker)
}

// ParseTag extracts the tracking triple from a tag collection string. Fields
// are located by their markers, not fixed offsets, and validated non-empty.
func ParseTag(tags string) (TrackingTag, error) {
	tracking, err := fieldAfter(tags, trackingPrefix)
	if err != nil {
		return TrackingTag{}, err
	}
	line, err := fieldAfter(tags, linePrefix)
	if err != nil {
		return TrackingTag{}, err
	}
	// RRcode may be absent on tags written before it was recorded; it is
	// always re-derivable from the order name, so no error.
	reply, _ := fieldAfter(tags, replyPrefix)

	return TrackingTag{
		TrackingNumber: tracking,
		LineNumber:     line,
		ReplyCode:      reply,
	}, nil
}

// fieldAfter returns the value between prefix and the next comma (or end of
// string), trimmed of whitespace.
func fieldAfter(s, prefix string) (string, error) {
	start := strings.Index(s, prefix)
	if start < 0 {
		return "", fmt.Errorf("tag missing %q marker", prefix)
	}
	rest := s[start+len(prefix):]
	if end := strings.IndexByte(rest, ','); end >= 0 {
		rest = rest[:end]
	}
	val := strings.TrimSpace(rest)
	if val == "" {
		return "", fmt.Errorf("tag has empty %q field", prefix)
	}
	return val, nil
}

// replyCodeOffset and replyCodeMod come from the postal reply-card numbering
// agreement; the resulting code maps each order to a unique reply id.
const (
	replyCodeOffset = 212724
	replyCodeMod    = 999999998
)

// ReplyCode derives the postal reply-card code from an order's display name
// (e.g. "#212725"). The code is deterministic and never persisted as ground
// truth; both the already-tagged and newly-tagged paths call this one
// function.
func ReplyCode(orderName string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, orderName)
	if digits == "" {
		return "", fmt.Errorf("order name %q has no numeric part", orderName)
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse order number from %q: %w", orderName, err)
	}

	id := (n-replyCodeOffset)%replyCodeMod + 1
	return fmt.Sprintf("RR%09d1B", id), nil
}
