package policy

// Origin names the configuration surface a resolved field came from.
type Origin string

const (
	OriginLegacy    Origin = "legacy"
	OriginAttribute Origin = "attribute"
	OriginExplicit  Origin = "explicit"
	OriginDefault   Origin = "default"
)

// Origins maps a field path (e.g. "input.max_digits") to the surface that won it.
type Origins map[string]Origin

// Input is everything Resolve layers over the built-in defaults.
// A zero Input resolves to DefaultPolicy().
type Input struct {
	Attrs  map[string]any
	Policy *PartialPolicy
	Legacy Legacy
}

// Attribute names read from the element attribute bag. Each field is looked up
// under its kebab-case name first, then its camelCase name.
const (
	AttrAutoFormat                         = "auto-format"
	AttrNoFormattingAsYouType              = "no-formatting-as-you-type"
	AttrAutoDetectCountryFromPrefix        = "auto-detect-country-from-prefix"
	AttrAutoDetectCountryLocalTrunkPrefix  = "auto-detect-country-local-trunk-prefix"
	AttrAutoDetectCountryLocalCallingCodes = "auto-detect-country-local-calling-codes"
)

var attrAliases = map[string]string{
	AttrAutoFormat:                         "autoFormat",
	AttrNoFormattingAsYouType:              "noFormattingAsYouType",
	AttrAutoDetectCountryFromPrefix:        "autoDetectCountryFromPrefix",
	AttrAutoDetectCountryLocalTrunkPrefix:  "autoDetectCountryLocalTrunkPrefix",
	AttrAutoDetectCountryLocalCallingCodes: "autoDetectCountryLocalCallingCodes",
}

// provider is one optional source for a field, tagged with its origin.
type provider[T any] struct {
	origin Origin
	get    func() (T, bool)
}

// firstDefined evaluates providers left to right and returns the first
// defined value. With no defined provider it returns fallback and OriginDefault.
func firstDefined[T any](fallback T, providers ...provider[T]) (T, Origin) {
	for _, p := range providers {
		if v, ok := p.get(); ok {
			return v, p.origin
		}
	}
	return fallback, OriginDefault
}

func fromPtr[T any](origin Origin, p *T) provider[T] {
	return provider[T]{origin: origin, get: func() (T, bool) {
		if p == nil {
			var zero T
			return zero, false
		}
		return *p, true
	}}
}

// fromPtrAny is fromPtr for fields whose coercion accepts any value.
func fromPtrAny[T any](origin Origin, p *T) provider[any] {
	return provider[any]{origin: origin, get: func() (any, bool) {
		if p == nil {
			return nil, false
		}
		return *p, true
	}}
}

// fromAttr reads the named attribute and its camelCase alias. A present
// key holding nil is treated as absent.
func fromAttr(attrs map[string]any, name string) provider[any] {
	return provider[any]{origin: OriginAttribute, get: func() (any, bool) {
		for _, key := range []string{name, attrAliases[name]} {
			if v, ok := attrs[key]; ok && v != nil {
				return v, true
			}
		}
		return nil, false
	}}
}

func (p *PartialPolicy) input() PartialInputPolicy {
	if p == nil || p.Input == nil {
		return PartialInputPolicy{}
	}
	return *p.Input
}

func (p *PartialPolicy) formatting() PartialFormattingPolicy {
	if p == nil || p.Formatting == nil {
		return PartialFormattingPolicy{}
	}
	return *p.Formatting
}

func (p *PartialPolicy) country() PartialCountryPolicy {
	if p == nil || p.Country == nil {
		return PartialCountryPolicy{}
	}
	return *p.Country
}

func (p *PartialPolicy) ui() PartialUIPolicy {
	if p == nil || p.UI == nil {
		return PartialUIPolicy{}
	}
	return *p.UI
}

// legacyPlus prefers the legacy plus flag over enforceLeadingPlus.
func (l Legacy) legacyPlus() *bool {
	if l.Plus != nil {
		return l.Plus
	}
	return l.EnforceLeadingPlus
}

// legacyShowFlags inverts noFlags when it is set, else uses showFlagsInPopover.
func (l Legacy) legacyShowFlags() *bool {
	if l.NoFlags != nil {
		v := !*l.NoFlags
		return &v
	}
	return l.ShowFlagsInPopover
}

// Resolve merges legacy flags, attributes, the explicit policy and the
// defaults into one fully populated Policy. It never fails.
func Resolve(in Input) Policy {
	p, _ := Explain(in)
	return p
}

// Explain is Resolve plus the origin of every field.
func Explain(in Input) (Policy, Origins) {
	def := DefaultPolicy()
	origins := make(Origins, 11)
	var out Policy

	explicitInput := in.Policy.input()
	explicitFormatting := in.Policy.formatting()
	explicitCountry := in.Policy.country()
	explicitUI := in.Policy.ui()

	// input
	maxDigits, o := firstDefined(def.Input.MaxDigits,
		fromPtr(OriginLegacy, in.Legacy.MaxDigits),
		fromPtr(OriginExplicit, explicitInput.MaxDigits),
	)
	out.Input.MaxDigits = max(1, maxDigits)
	origins["input.max_digits"] = o

	out.Input.DigitsOnly, origins["input.digits_only"] = firstDefined(def.Input.DigitsOnly,
		fromPtr(OriginLegacy, in.Legacy.DigitsOnly),
		fromPtr(OriginExplicit, explicitInput.DigitsOnly),
	)

	out.Input.Plus, origins["input.plus"] = firstDefined(def.Input.Plus,
		fromPtr(OriginLegacy, in.Legacy.legacyPlus()),
		fromPtr(OriginExplicit, explicitInput.Plus),
	)

	// formatting
	format, o := firstDefined(def.Formatting.DisplayFormat,
		fromPtr(OriginLegacy, in.Legacy.Format),
		fromPtr(OriginExplicit, explicitFormatting.DisplayFormat),
	)
	out.Formatting.DisplayFormat, origins["formatting.display_format"] = coerceOr(parseDisplayFormat, format, o, def.Formatting.DisplayFormat)

	raw, o := firstDefined[any](nil,
		fromAttr(in.Attrs, AttrAutoFormat),
		fromPtrAny(OriginExplicit, explicitFormatting.AutoFormat),
	)
	out.Formatting.AutoFormat = parseBool(raw, def.Formatting.AutoFormat)
	origins["formatting.auto_format"] = o

	raw, o = firstDefined[any](nil,
		fromAttr(in.Attrs, AttrNoFormattingAsYouType),
		fromPtrAny(OriginExplicit, explicitFormatting.NoFormattingAsYouType),
	)
	out.Formatting.NoFormattingAsYouType = parseBool(raw, def.Formatting.NoFormattingAsYouType)
	origins["formatting.no_formatting_as_you_type"] = o

	// country
	out.Country.FetchCountry, origins["country.fetch_country"] = firstDefined(def.Country.FetchCountry,
		fromPtr(OriginLegacy, in.Legacy.Fetch),
		fromPtr(OriginExplicit, explicitCountry.FetchCountry),
	)

	raw, o = firstDefined[any](nil,
		fromAttr(in.Attrs, AttrAutoDetectCountryFromPrefix),
		fromPtrAny(OriginExplicit, explicitCountry.AutoDetectCountryFromPrefix),
	)
	out.Country.AutoDetectCountryFromPrefix = parseBool(raw, def.Country.AutoDetectCountryFromPrefix)
	origins["country.auto_detect_country_from_prefix"] = o

	raw, o = firstDefined[any](def.Country.AutoDetectCountryLocalTrunkPrefix,
		fromAttr(in.Attrs, AttrAutoDetectCountryLocalTrunkPrefix),
		fromPtrAny(OriginExplicit, explicitCountry.AutoDetectCountryLocalTrunkPrefix),
	)
	out.Country.AutoDetectCountryLocalTrunkPrefix = stringify(raw)
	origins["country.auto_detect_country_local_trunk_prefix"] = o

	raw, o = firstDefined[any](nil,
		fromAttr(in.Attrs, AttrAutoDetectCountryLocalCallingCodes),
		provider[any]{origin: OriginExplicit, get: func() (any, bool) {
			codes := explicitCountry.AutoDetectCountryLocalCallingCodes
			return codes, codes != nil
		}},
	)
	out.Country.AutoDetectCountryLocalCallingCodes, origins["country.auto_detect_country_local_calling_codes"] = coerceOr(parseStringList, raw, o, def.Country.AutoDetectCountryLocalCallingCodes)

	// ui
	out.UI.ShowFlagsInPopover, origins["ui.show_flags_in_popover"] = firstDefined(def.UI.ShowFlagsInPopover,
		fromPtr(OriginLegacy, in.Legacy.legacyShowFlags()),
		fromPtr(OriginExplicit, explicitUI.ShowFlagsInPopover),
	)

	return out, origins
}

// coerceOr applies parse to the winning value. A value the parser rejects
// falls back to the default, and the field is then reported as a default.
func coerceOr[In, Out any](parse func(In) (Out, bool), v In, origin Origin, fallback Out) (Out, Origin) {
	if out, ok := parse(v); ok {
		return out, origin
	}
	return fallback, OriginDefault
}
