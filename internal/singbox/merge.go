package singbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MissingSlotPolicy decides what MergeOutbound does when no outbound is
// tagged "proxy".
type MissingSlotPolicy string

const (
	// MissingSlotIgnore leaves the document unchanged.
	MissingSlotIgnore MissingSlotPolicy = "ignore"
	// MissingSlotAppend adds a new "proxy" outbound at the end.
	MissingSlotAppend MissingSlotPolicy = "append"
	// MissingSlotFail returns a SlotNotFound error.
	MissingSlotFail MissingSlotPolicy = "fail"
)

// Valid reports whether p is one of the known policies.
func (p MissingSlotPolicy) Valid() bool {
	switch p {
	case MissingSlotIgnore, MissingSlotAppend, MissingSlotFail:
		return true
	}
	return false
}

type MergeResult int

const (
	SlotReplaced MergeResult = iota
	SlotMissing
	SlotAppended
)

func (r MergeResult) String() string {
	switch r {
	case SlotReplaced:
		return "replaced"
	case SlotMissing:
		return "missing"
	case SlotAppended:
		return "appended"
	default:
		return "unknown"
	}
}

// BuildFunc produces the replacement outbound for a slot whose tag
// (raw JSON) is given.
type BuildFunc func(tag json.RawMessage) ([]byte, error)

// MergeOutbound replaces the first outbounds[] element tagged "proxy" with
// the output of build. Everything outside that element is kept byte for
// byte. build is only called once the target is known; if it fails, the
// document is not touched.
func MergeOutbound(doc []byte, build BuildFunc, policy MissingSlotPolicy) ([]byte, MergeResult, error) {
	if !gjson.ValidBytes(doc) {
		return nil, 0, &StoreError{Kind: DocumentParseFailure, Cause: errors.New("invalid JSON")}
	}
	if !gjson.ParseBytes(doc).IsObject() {
		return nil, 0, &StoreError{Kind: DocumentParseFailure, Cause: errors.New("top level is not an object")}
	}

	outbounds := gjson.GetBytes(doc, "outbounds")
	index, tag := findSlot(outbounds)

	if index >= 0 {
		raw, err := build(tag)
		if err != nil {
			return nil, 0, err
		}
		out, err := sjson.SetRawBytes(doc, "outbounds."+strconv.Itoa(index), raw)
		if err != nil {
			return nil, 0, &StoreError{Kind: DocumentParseFailure, Cause: fmt.Errorf("failed to splice outbound: %w", err)}
		}
		return out, SlotReplaced, nil
	}

	switch policy {
	case MissingSlotAppend:
		if outbounds.Exists() && !outbounds.IsArray() {
			return nil, 0, &StoreError{Kind: DocumentParseFailure, Cause: errors.New("\"outbounds\" is not an array")}
		}
		raw, err := build(json.RawMessage(strconv.Quote(ProxyTag)))
		if err != nil {
			return nil, 0, err
		}
		var out []byte
		if outbounds.Exists() {
			out, err = sjson.SetRawBytes(doc, "outbounds.-1", raw)
		} else {
			out, err = sjson.SetRawBytes(doc, "outbounds", append(append([]byte{'['}, raw...), ']'))
		}
		if err != nil {
			return nil, 0, &StoreError{Kind: DocumentParseFailure, Cause: fmt.Errorf("failed to append outbound: %w", err)}
		}
		return out, SlotAppended, nil
	case MissingSlotFail:
		return nil, 0, &StoreError{Kind: SlotNotFound, Cause: fmt.Errorf("no outbound tagged %q", ProxyTag)}
	default:
		return doc, SlotMissing, nil
	}
}

// findSlot returns the index and raw tag of the first outbound tagged
// "proxy", or -1.
func findSlot(outbounds gjson.Result) (int, json.RawMessage) {
	if !outbounds.IsArray() {
		return -1, nil
	}
	index := -1
	var tag json.RawMessage
	i := 0
	outbounds.ForEach(func(_, v gjson.Result) bool {
		t := v.Get("tag")
		if v.IsObject() && t.Type == gjson.String && t.Str == ProxyTag {
			index = i
			tag = json.RawMessage(t.Raw)
			return false
		}
		i++
		return true
	})
	return index, tag
}
