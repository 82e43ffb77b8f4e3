package singbox

import (
	"encoding/json"
	"errors"
	"strconv"

	"kiki/internal/logger"
	"kiki/internal/singbox/parser"

	"github.com/tidwall/pretty"
)

// UpdateProxySlot loads the document, points its "proxy" outbound at ep
// and writes it back. Nothing is written unless the new outbound and the
// merged document were both built successfully.
func UpdateProxySlot(store *Store, ep parser.Endpoint, policy MissingSlotPolicy) (MergeResult, error) {
	doc, err := store.Load()
	if err != nil {
		return 0, err
	}

	merged, result, err := MergeOutbound(doc, func(tag json.RawMessage) ([]byte, error) {
		return BuildOutbound(ep, tag)
	}, policy)
	if err != nil {
		var se *StoreError
		if errors.As(err, &se) && se.Path == "" {
			se.Path = store.Path
		}
		return 0, err
	}

	if result == SlotMissing {
		logger.Log.Debugf("No outbound tagged %q in %s, rewriting unchanged", ProxyTag, store.Path)
	}

	if err := store.Save(merged); err != nil {
		return 0, err
	}
	return result, nil
}

// Preview renders the outbound UpdateProxySlot would write, indented.
func Preview(ep parser.Endpoint) ([]byte, error) {
	raw, err := BuildOutbound(ep, json.RawMessage(strconv.Quote(ProxyTag)))
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(raw, prettyOptions), nil
}
