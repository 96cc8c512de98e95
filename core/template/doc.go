// Package template synthesizes starter presets for each Voicemeeter tier.
//
// The tier decides the topology:
//
//	basic   3 strips, 2 buses
//	banana  5 strips, 3 buses
//	potato  8 strips, 5 buses
//
// Every strip gets label, mute, gain, A1 and A2; the first two strips also
// get B1, comp and gate. Every bus gets mute, gain and eq.on. One empty
// scenario named "default" is added and the result is sealed.
//
// Unknown tiers are rejected with preset.ErrUnknownVariant instead of
// falling back to the richest topology.
package template
