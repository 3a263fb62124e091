package commands

// PluralSuffix exports pluralSuffix for testing.
var PluralSuffix = pluralSuffix //nolint:gochecknoglobals // test export
