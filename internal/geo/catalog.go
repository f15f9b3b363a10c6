package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"housepulse/pkg/contracts/domain"
)

// CatalogEntry is one core-based statistical area with its center coordinate.
type CatalogEntry struct {
	CBSACode   string
	Name       string
	Coordinate domain.Coordinate
	CBSAType   string
}

// Catalog holds CBSA center coordinates indexed by code and by name. It is
// built once per load cycle and read-only afterwards.
type Catalog struct {
	byCode map[string]CatalogEntry
	byName map[string]CatalogEntry
}

// LoadCatalog reads a CBSA coordinate catalog from a CSV file. A missing or
// empty path yields an empty catalog rather than an error so coordinate
// placement degrades to the geocoder fallback.
func LoadCatalog(path string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	catalog := &Catalog{
		byCode: make(map[string]CatalogEntry),
		byName: make(map[string]CatalogEntry),
	}
	if path == "" {
		return catalog, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("cbsa coordinate catalog not found, continuing without it", "path", path)
			return catalog, nil
		}
		return nil, fmt.Errorf("failed to open cbsa coordinate catalog: %w", err)
	}
	defer f.Close()

	if err := catalog.read(f, logger); err != nil {
		return nil, fmt.Errorf("failed to read cbsa coordinate catalog %s: %w", path, err)
	}

	logger.Info("cbsa coordinate catalog loaded", "path", path, "entries", len(catalog.byCode))
	return catalog, nil
}

func (c *Catalog) read(r io.Reader, logger *slog.Logger) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"CBSA_CODE", "CBSA_NAME", "LATITUDE", "LONGITUDE"} {
		if _, ok := columns[required]; !ok {
			return fmt.Errorf("missing required column %s", required)
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Debug("dropping unreadable catalog row", "error", err)
			continue
		}

		entry, ok := buildEntry(record, columns)
		if !ok {
			logger.Debug("dropping malformed catalog row", "fields", len(record))
			continue
		}
		c.byCode[entry.CBSACode] = entry
		c.byName[entry.Name] = entry
	}
	return nil
}

func buildEntry(record []string, columns map[string]int) (CatalogEntry, bool) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	code := field("CBSA_CODE")
	name := field("CBSA_NAME")
	if code == "" || name == "" {
		return CatalogEntry{}, false
	}

	lat, err := strconv.ParseFloat(field("LATITUDE"), 64)
	if err != nil {
		return CatalogEntry{}, false
	}
	lng, err := strconv.ParseFloat(field("LONGITUDE"), 64)
	if err != nil {
		return CatalogEntry{}, false
	}

	cbsaType := "Micro Area"
	if strings.Contains(name, "Metro Area") {
		cbsaType = "Metro Area"
	}

	return CatalogEntry{
		CBSACode:   code,
		Name:       name,
		Coordinate: domain.Coordinate{Latitude: lat, Longitude: lng},
		CBSAType:   cbsaType,
	}, true
}

// ByCode looks up an entry by CBSA code.
func (c *Catalog) ByCode(code string) (CatalogEntry, bool) {
	entry, ok := c.byCode[code]
	return entry, ok
}

// ByName looks up an entry by exact CBSA title.
func (c *Catalog) ByName(name string) (CatalogEntry, bool) {
	entry, ok := c.byName[name]
	return entry, ok
}

// Names lists every canonical CBSA title in the catalog.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	return names
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.byCode)
}
