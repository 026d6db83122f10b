package i18n

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v2"
)

//go:embed translations
var embedded embed.FS

type yamlDictionary struct {
	Entries map[string]string
}

func (d *yamlDictionary) Lookup(key string) (data string, ok bool) {
	if value, ok := d.Entries[key]; ok {
		// \x02 is ASCII code for hex 02, which is STX (start of text)
		return "\x02" + value, true
	}
	return "", false
}

// NewCatalog builds a translation catalog from the embedded translation files. Each file
// is named after the two-letter identifier of its language, e.g. "de.yml".
func NewCatalog(fallbackLang string) (catalog.Catalog, []string, error) {
	return NewCatalogFromFS(embedded, "translations", fallbackLang)
}

// NewCatalogFromFS reads all yml files from dir in fsys and returns a catalog with them,
// along with the languages found
func NewCatalogFromFS(fsys fs.FS, dir, fallbackLang string) (catalog.Catalog, []string, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, nil, err
	}
	translations := map[string]catalog.Dictionary{}
	var langs []string
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".yml" {
			continue
		}
		yamlFile, err := fs.ReadFile(fsys, dir+"/"+file.Name())
		if err != nil {
			return nil, nil, err
		}
		dict, err := ParseYAMLDict(yamlFile)
		if err != nil {
			return nil, nil, err
		}
		lang := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		translations[lang] = dict
		langs = append(langs, lang)
	}
	cat, err := catalog.NewFromMap(translations, catalog.Fallback(language.MustParse(fallbackLang)))
	if err != nil {
		return nil, nil, err
	}
	return cat, langs, nil
}

func ParseYAMLDict(file []byte) (*yamlDictionary, error) {
	data := map[string]string{}
	if err := yaml.Unmarshal(file, &data); err != nil {
		return nil, err
	}
	return &yamlDictionary{Entries: data}, nil
}

// Printers returns a printer per language, backed by cat
func Printers(cat catalog.Catalog, langs []string) map[string]*message.Printer {
	printers := make(map[string]*message.Printer, len(langs))
	for _, lang := range langs {
		printers[lang] = message.NewPrinter(language.Make(lang), message.Catalog(cat))
	}
	return printers
}

// Translator returns a function looking up keys with p. Unknown keys are returned as is.
func Translator(p *message.Printer) func(key string) string {
	return func(key string) string {
		return p.Sprintf(key)
	}
}
