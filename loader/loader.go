// Package loader reads the line-delimited geonames-shaped dataset and
// builds citycore.Place values, then feeds both core indexes during
// warm-up. The core indexes have no dependency on this package.
//
// The expected input is the tab-delimited format geonames.org distributes
// as cities1000.txt (optionally zip-compressed, as cities1000.zip): 19
// fields per line.
package loader

import (
	"archive/zip"
	"bufio"
	"compress/gzip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/globalindex/citycore"
)

const fieldCount = 19

// field indexes into a geonames cities1000.txt row.
const (
	fieldGeonameID = iota
	fieldName
	fieldASCIIName
	fieldAlternateNames
	fieldLatitude
	fieldLongitude
	fieldFeatureClass
	fieldFeatureCode
	fieldCountryCode
	fieldCC2
	fieldAdmin1
	fieldAdmin2
	fieldAdmin3
	fieldAdmin4
	fieldPopulation
	fieldElevation
	fieldDEM
	fieldTimezone
	fieldModificationDate
)

// LoadFile reads a geonames-shaped dataset from path, dispatching on
// extension to handle mixed zip/gzip/plaintext sources: .zip reads every
// .txt entry via archive/zip, .gz decompresses via compress/gzip,
// anything else is read as plain text.
func LoadFile(path string) ([]citycore.Place, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return loadZip(path)
	case ".gz":
		return loadGzip(path)
	default:
		fi, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", path)
		}
		defer fi.Close()
		return parseLines(fi)
	}
}

func loadZip(path string) ([]citycore.Place, error) {
	rz, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open zip %s", path)
	}
	defer rz.Close()

	var places []citycore.Place
	for _, entry := range rz.File {
		if !strings.HasSuffix(entry.Name, ".txt") {
			continue
		}
		fi, err := entry.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "open zip entry %s", entry.Name)
		}
		parsed, err := parseLines(fi)
		fi.Close()
		if err != nil {
			return nil, err
		}
		places = append(places, parsed...)
	}
	return places, nil
}

func loadGzip(path string) ([]citycore.Place, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer fi.Close()

	gz, err := gzip.NewReader(fi)
	if err != nil {
		return nil, errors.Wrapf(err, "gunzip %s", path)
	}
	defer gz.Close()

	return parseLines(gz)
}

// parseLines scans tab-delimited geonames rows. Malformed rows (wrong
// field count, unparsable coordinates) are skipped and logged rather than
// aborting the whole load — bulk geographic dumps routinely contain a
// handful of dirty rows.
func parseLines(r io.Reader) ([]citycore.Place, error) {
	var places []citycore.Place
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != fieldCount {
			slog.Warn("loader: skipping malformed row", "line", lineNo, "fields", len(fields))
			continue
		}

		p, err := rowToPlace(fields)
		if err != nil {
			slog.Warn("loader: skipping row", "line", lineNo, "error", err)
			continue
		}
		places = append(places, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan dataset")
	}
	return places, nil
}

func rowToPlace(fields []string) (citycore.Place, error) {
	id, err := strconv.ParseInt(fields[fieldGeonameID], 10, 64)
	if err != nil {
		return citycore.Place{}, errors.Wrap(err, "parse geonameid")
	}
	lat, err := strconv.ParseFloat(fields[fieldLatitude], 64)
	if err != nil {
		return citycore.Place{}, errors.Wrap(err, "parse latitude")
	}
	lon, err := strconv.ParseFloat(fields[fieldLongitude], 64)
	if err != nil {
		return citycore.Place{}, errors.Wrap(err, "parse longitude")
	}
	var pop int64
	if fields[fieldPopulation] != "" {
		pop, err = strconv.ParseInt(fields[fieldPopulation], 10, 64)
		if err != nil {
			return citycore.Place{}, errors.Wrap(err, "parse population")
		}
	}

	var alts []string
	if fields[fieldAlternateNames] != "" {
		alts = strings.Split(fields[fieldAlternateNames], ",")
	}

	return citycore.Place{
		ID:             id,
		Name:           fields[fieldName],
		AlternateNames: alts,
		Latitude:       lat,
		Longitude:      lon,
		CountryCode:    fields[fieldCountryCode],
		FeatureClass:   fields[fieldFeatureClass],
		FeatureCode:    fields[fieldFeatureCode],
		Admin1:         fields[fieldAdmin1],
		Admin2:         fields[fieldAdmin2],
		Admin3:         fields[fieldAdmin3],
		Admin4:         fields[fieldAdmin4],
		Timezone:       fields[fieldTimezone],
		Population:     pop,
	}, nil
}

// WarmUp inserts every place into both indexes, logging progress every
// 20,000 places the way the original server.py's main() loop does.
// Inserts that fail validation (invalid coordinates) are logged and
// skipped rather than aborting the whole warm-up.
func WarmUp(grid *citycore.GeoGrid, idx *citycore.TieredInvertedIndex, places []citycore.Place) {
	for i, p := range places {
		if err := grid.Insert(p); err != nil {
			slog.Warn("loader: grid insert failed", "id", p.ID, "error", err)
			continue
		}
		idx.Insert(p)

		if (i+1)%20000 == 0 {
			slog.Info("loader: warm-up progress", "loaded", i+1, "total", len(places))
		}
	}
	slog.Info("loader: warm-up finished", "loaded", len(places))
}
