// Package fileindex indexes raw CSV source files by filename-derived
// metadata and scores them against free-text queries.
package fileindex

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Vocab holds the known-company and known-topic vocabularies used for
// detection. Lists are ordered: detection stops at the first hit.
type Vocab struct {
	Companies []string `yaml:"companies"`
	Topics    []string `yaml:"topics"`
}

// DefaultVocab returns the built-in vocabularies for the fleet-telematics
// dataset.
func DefaultVocab() *Vocab {
	return &Vocab{
		Companies: []string{
			"samsara", "geotab", "motive", "verizon connect", "verizon",
			"lytx", "trimble", "webfleet", "powerfleet", "teletrac navman",
			"teletrac", "azuga", "gps insight", "fleet complete", "fleetio",
			"omnitracs", "platform science", "netradyne", "nauto", "solera",
			"michelin", "zonar", "orbcomm", "calamp", "mix telematics",
			"quartix", "targa telematics", "gurtam", "wialon", "inseego",
		},
		Topics: []string{
			"financial", "financials", "revenue", "customer", "customers",
			"partnership", "partnerships", "acquisition", "acquisitions",
			"pricing", "vendor", "vendors", "operator", "operators",
			"market", "competitor", "valuation", "funding", "fleet",
			"telematics", "insurance", "video", "safety", "compliance",
			"eld", "hardware",
		},
	}
}

// LoadVocab reads a vocabulary override from a YAML file. Empty lists
// fall back to the defaults.
func LoadVocab(path string) (*Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fileindex: read vocab %s", path)
	}

	var v Vocab
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, eris.Wrapf(err, "fileindex: parse vocab %s", path)
	}

	def := DefaultVocab()
	if len(v.Companies) == 0 {
		v.Companies = def.Companies
	}
	if len(v.Topics) == 0 {
		v.Topics = def.Topics
	}
	return &v, nil
}
