package schema

// wellKnownNames are the condition names intrinsic to the build environment.
// They are always recognized, accept any value, and serve as suggestion
// targets for near-miss user names. Order matters: it is the suggestion
// pool order, so it must stay stable across releases.
var wellKnownNames = []string{
	"unix",
	"windows",
	"test",
	"debug_assertions",
	"doc",
	"doctest",
	"miri",
	"proc_macro",
	"panic",
	"sanitize",
	"target_abi",
	"target_arch",
	"target_endian",
	"target_env",
	"target_family",
	"target_feature",
	"target_has_atomic",
	"target_os",
	"target_pointer_width",
	"target_vendor",
}
