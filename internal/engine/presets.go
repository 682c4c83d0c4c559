package engine

// PresetConfig is one named public rule-template URL, returned verbatim
// by Presets (SPEC_FULL.md §4.7).
type PresetConfig struct {
	Name        string
	URL         string
	Description string
}

// Presets is the static table of public ACL4SSR-style rule-template URLs
// the original source's get_preset_configs returns. It has no network or
// stateful behavior, just a literal list.
func Presets() []PresetConfig {
	return []PresetConfig{
		{
			Name:        "ACL4SSR_Online",
			URL:         "https://raw.githubusercontent.com/ACL4SSR/ACL4SSR/master/Clash/config/ACL4SSR_Online.ini",
			Description: "Default build, broad group coverage",
		},
		{
			Name:        "ACL4SSR_Online_Mini",
			URL:         "https://raw.githubusercontent.com/ACL4SSR/ACL4SSR/master/Clash/config/ACL4SSR_Online_Mini.ini",
			Description: "Minimal build, few rules",
		},
		{
			Name:        "ACL4SSR_Online_Full",
			URL:         "https://raw.githubusercontent.com/ACL4SSR/ACL4SSR/master/Clash/config/ACL4SSR_Online_Full.ini",
			Description: "Full group build, includes test-only groups",
		},
		{
			Name:        "ACL4SSR_Online_Full_NoAuto",
			URL:         "https://raw.githubusercontent.com/ACL4SSR/ACL4SSR/master/Clash/config/ACL4SSR_Online_Full_NoAuto.ini",
			Description: "Full group build, no auto speed-test group",
		},
		{
			Name:        "ACL4SSR_Online_AdblockPlus",
			URL:         "https://raw.githubusercontent.com/ACL4SSR/ACL4SSR/master/Clash/config/ACL4SSR_Online_Full_AdblockPlus.ini",
			Description: "Full group build, with ad blocking",
		},
		{
			Name:        "ACL4SSR_Online_MultiCountry",
			URL:         "https://raw.githubusercontent.com/ACL4SSR/ACL4SSR/master/Clash/config/ACL4SSR_Online_Full_MultiMode.ini",
			Description: "Full group build, multiple routing modes",
		},
	}
}
