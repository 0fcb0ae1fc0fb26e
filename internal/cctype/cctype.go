// Package cctype is the closed set of input/intermediate/output file
// types, and the suffix/specifier maps used to classify an input.
package cctype

// Type is one entry in the closed file-type set.
type Type struct {
	Name string

	// PreprocessSource, if non-empty, names the type this type becomes
	// after preprocessing (e.g. C source -> C preprocessed source).
	// Empty means the type needs no preprocessing.
	PreprocessSource string

	OnlyAssemble  bool
	OnlyPrecompile bool

	// TempSuffix is the suffix used for a temp file holding this type's
	// output, e.g. "o", "s", "i".
	TempSuffix string
}

// HasPreprocessSource reports whether inputs of this type pass through
// a Preprocess phase first.
func (t Type) HasPreprocessSource() bool {
	return t.PreprocessSource != ""
}

// The closed set of types, named exactly as spec.md §3 enumerates them.
var (
	CSource            = Type{Name: "c", PreprocessSource: "", TempSuffix: "c"}
	CPreprocessed      = Type{Name: "cpp-output", TempSuffix: "i"}
	CXXSource          = Type{Name: "c++", TempSuffix: "cpp"}
	CXXPreprocessed    = Type{Name: "c++-cpp-output", TempSuffix: "ii"}
	ObjCSource         = Type{Name: "objective-c", TempSuffix: "m"}
	ObjCPreprocessed   = Type{Name: "objective-c-cpp-output", TempSuffix: "mi"}
	ObjCXXSource       = Type{Name: "objective-c++", TempSuffix: "mm"}
	ObjCXXPreprocessed = Type{Name: "objective-c++-cpp-output", TempSuffix: "mii"}
	AssemblyNoCPP      = Type{Name: "assembler", OnlyAssemble: true, TempSuffix: "s"}
	AssemblyWithCPP    = Type{Name: "assembler-with-cpp", TempSuffix: "s"}
	LLVMIR             = Type{Name: "llvm-bc", TempSuffix: "bc"}
	Object             = Type{Name: "object", TempSuffix: "o"}
	PCH                = Type{Name: "precompiled-header", OnlyPrecompile: true, TempSuffix: "gch"}
	Image              = Type{Name: "image", TempSuffix: ""}
	Nothing            = Type{Name: "nothing", TempSuffix: ""}
)

func init() {
	CSource.PreprocessSource = CPreprocessed.Name
	CXXSource.PreprocessSource = CXXPreprocessed.Name
	ObjCSource.PreprocessSource = ObjCPreprocessed.Name
	ObjCXXSource.PreprocessSource = ObjCXXPreprocessed.Name
	AssemblyWithCPP.PreprocessSource = AssemblyNoCPP.Name
}

var allTypes = []Type{
	CSource, CPreprocessed, CXXSource, CXXPreprocessed,
	ObjCSource, ObjCPreprocessed, ObjCXXSource, ObjCXXPreprocessed,
	AssemblyNoCPP, AssemblyWithCPP, LLVMIR, Object, PCH, Image, Nothing,
}

// ByName looks up a type by its canonical name.
func ByName(name string) (Type, bool) {
	for _, t := range allTypes {
		if t.Name == name {
			return t, true
		}
	}

	return Type{}, false
}

var suffixMap = map[string]string{
	".c":   CSource.Name,
	".i":   CPreprocessed.Name,
	".cc":  CXXSource.Name,
	".cp":  CXXSource.Name,
	".cxx": CXXSource.Name,
	".cpp": CXXSource.Name,
	".CPP": CXXSource.Name,
	".c++": CXXSource.Name,
	".C":   CXXSource.Name,
	".ii":  CXXPreprocessed.Name,
	".m":   ObjCSource.Name,
	".mi":  ObjCPreprocessed.Name,
	".mm":  ObjCXXSource.Name,
	".M":   ObjCXXSource.Name,
	".mii": ObjCXXPreprocessed.Name,
	".s":   AssemblyNoCPP.Name,
	".S":   AssemblyWithCPP.Name,
	".bc":  LLVMIR.Name,
	".o":   Object.Name,
	".a":   Object.Name,
	".so":  Object.Name,
	".dylib": Object.Name,
	".gch":  PCH.Name,
}

var specifierMap = map[string]string{
	"c":                      CSource.Name,
	"c-header":               CSource.Name,
	"cpp-output":             CPreprocessed.Name,
	"c++":                    CXXSource.Name,
	"c++-header":             CXXSource.Name,
	"c++-cpp-output":         CXXPreprocessed.Name,
	"objective-c":            ObjCSource.Name,
	"objective-c-cpp-output": ObjCPreprocessed.Name,
	"objective-c++":          ObjCXXSource.Name,
	"objective-c++-cpp-output": ObjCXXPreprocessed.Name,
	"assembler":              AssemblyNoCPP.Name,
	"assembler-with-cpp":     AssemblyWithCPP.Name,
	"ir":                     LLVMIR.Name,
	"none":                   "", // explicit "derive from suffix" override
}

// suffixOf returns the filename suffix of path, including the leading
// dot, or "" if there is none.
func suffixOf(path string) string {
	dot := -1

	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			break
		}

		if path[i] == '.' {
			dot = i
			break
		}
	}

	if dot < 0 {
		return ""
	}

	return path[dot:]
}

// ClassifyBySuffix maps a file path to a Type by its suffix. An
// unrecognized suffix falls back to Object (it is a linker input), per
// spec.md §4.2.
func ClassifyBySuffix(path string) Type {
	if name, ok := suffixMap[suffixOf(path)]; ok {
		if t, ok := ByName(name); ok {
			return t
		}
	}

	return Object
}

// ClassifyBySpecifier maps a -x <lang> specifier to a Type. "none" means
// "fall back to suffix-derived classification", signaled by the second
// return value. An unrecognized specifier also falls back to Object,
// with ok=false so the caller can emit the required warning.
func ClassifyBySpecifier(name string) (t Type, usesSuffix bool, ok bool) {
	mapped, known := specifierMap[name]
	if !known {
		return Object, false, false
	}

	if mapped == "" {
		return Type{}, true, true
	}

	t, _ = ByName(mapped)

	return t, false, true
}
