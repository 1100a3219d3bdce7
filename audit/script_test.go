package audit_test

import (
	"os"

	"github.com/william251082/lighthouse/audit"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseCoverage", func() {
	It("parses a profiler dump envelope and skips URL-less records", func() {
		data, err := os.ReadFile("testdata/coverage.json")
		Expect(err).NotTo(HaveOccurred())

		scripts, err := audit.ParseCoverage(data)
		Expect(err).NotTo(HaveOccurred())

		urls := make([]string, 0, len(scripts))
		for _, s := range scripts {
			urls = append(urls, s.URL)
		}
		Expect(urls).To(Equal([]string{
			"https://example.com/app.js",
			"https://example.com/vendor.js",
			"https://example.com/tiny.js",
			"https://example.com/orphan.js",
		}))

		Expect(scripts[0].Functions).To(HaveLen(3))
		Expect(scripts[0].Functions[1].Name).To(Equal("render"))
		Expect(scripts[0].Functions[1].Ranges).To(Equal([]audit.CoverageRange{
			{StartOffset: 200, EndOffset: 600, Count: 0},
		}))
	})

	It("parses a bare array of script records", func() {
		scripts, err := audit.ParseCoverage([]byte(
			`[{"url":"https://example.com/a.js","functions":[{"functionName":"f","ranges":[{"startOffset":0,"endOffset":10,"count":1}]}]}]`,
		))
		Expect(err).NotTo(HaveOccurred())
		Expect(scripts).To(HaveLen(1))
		Expect(scripts[0].Functions[0].Ranges[0].Count).To(Equal(uint64(1)))
	})

	It("rejects data that is not a coverage dump", func() {
		_, err := audit.ParseCoverage([]byte("not json at all"))
		Expect(err).To(MatchError(ContainSubstring("failed to unmarshal coverage dump")))
	})
})

var _ = Describe("ParseHAR", func() {
	It("extracts transfer sizes with the bodySize+headersSize fallback", func() {
		data, err := os.ReadFile("testdata/network.har")
		Expect(err).NotTo(HaveOccurred())

		records, err := audit.ParseHAR(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(Equal([]audit.ResourceRecord{
			{URL: "https://example.com/app.js", TransferSize: 60000},
			{URL: "https://example.com/vendor.js", TransferSize: 100000},
			{URL: "https://example.com/styles.css", TransferSize: 5000},
			{URL: "https://example.com/tiny.js", TransferSize: 3250},
		}))
	})

	It("rejects invalid JSON", func() {
		_, err := audit.ParseHAR([]byte("{"))
		Expect(err).To(MatchError("network log is not valid JSON"))
	})

	It("rejects logs without entries", func() {
		_, err := audit.ParseHAR([]byte(`{"log":{"version":"1.2"}}`))
		Expect(err).To(MatchError("network log has no log.entries"))
	})
})
