package cnabparser

import (
	"embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var builtinProfiles embed.FS

// DefaultProfileName is the built-in layout shipped with the application.
const DefaultProfileName = "itau240"

// Profile describes one bank's fixed-width export layout as data. New bank
// layouts are added as profile files, not code changes.
type Profile struct {
	Name      string       `yaml:"name"`
	BankLabel string       `yaml:"bank_label"`
	Header    HeaderLayout `yaml:"header"`
	Detail    DetailLayout `yaml:"detail"`
}

// HeaderLayout locates the one-time header record and its fields.
// All positions are zero-based byte offsets; End is exclusive.
type HeaderLayout struct {
	RecordTypePos   int    `yaml:"record_type_pos"`
	RecordTypeValue string `yaml:"record_type_value"`
	BankCodeStart   int    `yaml:"bank_code_start"`
	BankCodeEnd     int    `yaml:"bank_code_end"`
	AccountStart    int    `yaml:"account_start"`
	AccountEnd      int    `yaml:"account_end"`
	CompanyStart    int    `yaml:"company_start"`
	CompanyEnd      int    `yaml:"company_end"`
}

// DetailLayout locates the per-transaction fields of a ledger detail row.
// The date/amount/type block is anchored on the segment marker: the marker
// character followed by two 8-digit date groups, a 17-digit minor-unit
// amount and a one-character credit/debit flag. The description is the
// fixed-width slice that follows the flag and the bank-code digits.
type DetailLayout struct {
	Prefix            string `yaml:"prefix"`
	SequenceStart     int    `yaml:"sequence_start"`
	SequenceEnd       int    `yaml:"sequence_end"`
	ReferenceStart    int    `yaml:"reference_start"`
	ReferenceEnd      int    `yaml:"reference_end"`
	SegmentMarker     string `yaml:"segment_marker"`
	BankCodeDigits    int    `yaml:"bank_code_digits"`
	DescriptionLength int    `yaml:"description_length"`
}

// markerPattern compiles the detail-row anchor for this layout:
// marker + movement date (8 digits) + transaction date (8 digits) +
// amount (17 digits) + type flag.
func (d DetailLayout) markerPattern() *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(d.SegmentMarker) + `(\d{8})(\d{8})(\d{17})([A-Z])`)
}

// Validate checks the profile for the fields the parser cannot work without.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile is missing a name")
	}
	if p.Detail.Prefix == "" {
		return fmt.Errorf("profile %s: detail prefix is required", p.Name)
	}
	if p.Detail.SegmentMarker == "" {
		return fmt.Errorf("profile %s: segment marker is required", p.Name)
	}
	if p.Detail.DescriptionLength <= 0 {
		return fmt.Errorf("profile %s: description length must be positive", p.Name)
	}
	return nil
}

// DefaultProfile returns the built-in default layout.
func DefaultProfile() Profile {
	profile, err := ProfileByName(DefaultProfileName)
	if err != nil {
		// The embedded default is part of the build; failing to load it is a bug.
		panic(err)
	}
	return profile
}

// ProfileByName loads a built-in profile by name.
func ProfileByName(name string) (Profile, error) {
	data, err := builtinProfiles.ReadFile("profiles/" + name + ".yaml")
	if err != nil {
		return Profile{}, fmt.Errorf("unknown layout profile %q: %w", name, err)
	}
	return parseProfile(data)
}

// LoadProfileFile loads a user-supplied layout profile from a YAML file.
func LoadProfileFile(path string) (Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return Profile{}, fmt.Errorf("error reading layout profile: %w", err)
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("error parsing layout profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}
	return profile, nil
}
