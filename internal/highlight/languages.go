package highlight

// Language identifies a keyword set. The zero value is not valid; use
// DetectLanguage or LangDefault.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangJava       Language = "java"
	LangCPP        Language = "cpp"
	LangDefault    Language = "default"
)

// extLanguages maps file extensions (lowercase, with dot) to the keyword
// set used for highlighting. Extensions absent here fall back to LangDefault.
var extLanguages = map[string]Language{
	".py":   LangPython,
	".js":   LangJavaScript,
	".java": LangJava,
	".cpp":  LangCPP,
	".c":    LangCPP,
}

// keywordSets holds the per-language keyword tables. Initialized once,
// never mutated after init.
var keywordSets = map[Language]map[string]struct{}{}

var keywordLists = map[Language][]string{
	LangPython: {
		"def", "class", "if", "elif", "else", "for", "while", "try", "except",
		"finally", "import", "from", "as", "return", "yield", "lambda", "with",
		"assert", "break", "continue", "pass", "global", "nonlocal", "True",
		"False", "None", "and", "or", "not", "in", "is",
	},
	LangJavaScript: {
		"function", "var", "let", "const", "if", "else", "for", "while", "do",
		"switch", "case", "default", "try", "catch", "finally", "return",
		"break", "continue", "class", "extends", "import", "export", "from",
		"as", "true", "false", "null", "undefined", "new", "this", "typeof",
		"instanceof",
	},
	LangJava: {
		"public", "private", "protected", "static", "final", "abstract",
		"class", "interface", "extends", "implements", "if", "else", "for",
		"while", "do", "switch", "case", "default", "try", "catch", "finally",
		"throw", "throws", "return", "break", "continue", "new", "this",
		"super", "true", "false", "null",
	},
	LangCPP: {
		"int", "float", "double", "char", "bool", "void", "if", "else", "for",
		"while", "do", "switch", "case", "default", "try", "catch", "return",
		"break", "continue", "class", "struct", "public", "private",
		"protected", "virtual", "static", "const", "true", "false", "nullptr",
	},
	LangDefault: {
		"if", "else", "for", "while", "function", "class", "return", "true",
		"false", "null", "undefined", "public", "private", "static", "const",
		"var", "let",
	},
}

func init() {
	for lang, words := range keywordLists {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		keywordSets[lang] = set
	}
}

// DetectLanguage returns the keyword set for a file extension
// (e.g. ".py"). Unknown extensions get the default set.
func DetectLanguage(ext string) Language {
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	return LangDefault
}

// isKeyword reports whether word belongs to the language's keyword set.
// Languages without a table of their own share the default set.
func isKeyword(word string, lang Language) bool {
	set, ok := keywordSets[lang]
	if !ok {
		set = keywordSets[LangDefault]
	}
	_, ok = set[word]
	return ok
}
