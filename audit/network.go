package audit

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ResourceRecord is the number of bytes observed on the wire for one URL.
// It joins to a Script by exact URL equality.
type ResourceRecord struct {
	URL          string `json:"url"`
	TransferSize uint64 `json:"transferSize"`
}

// ParseHAR extracts per-URL transfer sizes from a HAR network log.
//
// The Chrome-specific `response._transferSize` field is preferred; when an
// exporter does not emit it, `bodySize + headersSize` is used instead.
// Entries without a usable size (cache hits, aborted transfers) are skipped.
func ParseHAR(data []byte) ([]ResourceRecord, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("network log is not valid JSON")
	}
	entries := gjson.GetBytes(data, "log.entries")
	if !entries.Exists() {
		return nil, errors.New("network log has no log.entries")
	}

	var records []ResourceRecord
	entries.ForEach(func(_, entry gjson.Result) bool {
		url := entry.Get("request.url").String()
		if url == "" {
			return true
		}
		size := entry.Get("response._transferSize").Int()
		if size <= 0 {
			body := entry.Get("response.bodySize").Int()
			headers := entry.Get("response.headersSize").Int()
			size = 0
			if body > 0 {
				size += body
			}
			if headers > 0 {
				size += headers
			}
		}
		if size <= 0 {
			return true
		}
		records = append(records, ResourceRecord{URL: url, TransferSize: uint64(size)})
		return true
	})
	return records, nil
}
