// Package data holds the static geography inputs of the loader.
package data

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

const (
	StatesFile = "states.csv"
	CitiesFile = "cities.csv"
)

//go:embed states.csv cities.csv
var embedded embed.FS

// FS returns basePath as a file system, or the embedded copies when
// basePath is empty.
func FS(basePath string) fs.FS {
	if basePath == "" {
		return embedded
	}
	return os.DirFS(basePath)
}

type State struct {
	Code         int
	Abbreviation string
	Name         string
}

type City struct {
	StateAbbreviation string
	IBGECode          int
	Name              string
	Active            bool
}

// ReadStates parses states.csv
// (co_unidade_federativa,sg_unidade_federativa,no_unidade_federativa).
func ReadStates(fsys fs.FS) ([]State, error) {
	var out []State
	err := readCSV(fsys, StatesFile, []string{"co_unidade_federativa", "sg_unidade_federativa", "no_unidade_federativa"},
		func(rec []string) error {
			code, err := strconv.Atoi(rec[0])
			if err != nil {
				return fmt.Errorf("co_unidade_federativa %q: %w", rec[0], err)
			}
			out = append(out, State{Code: code, Abbreviation: strings.ToUpper(rec[1]), Name: rec[2]})
			return nil
		})
	return out, err
}

// ReadCities parses cities.csv
// (sg_unidade_federativa,co_municipio_ibge,no_municipio,in_ativo).
func ReadCities(fsys fs.FS) ([]City, error) {
	var out []City
	err := readCSV(fsys, CitiesFile, []string{"sg_unidade_federativa", "co_municipio_ibge", "no_municipio", "in_ativo"},
		func(rec []string) error {
			code, err := strconv.Atoi(rec[1])
			if err != nil {
				return fmt.Errorf("co_municipio_ibge %q: %w", rec[1], err)
			}
			active, err := parseFlag(rec[3])
			if err != nil {
				return err
			}
			out = append(out, City{StateAbbreviation: strings.ToUpper(rec[0]), IBGECode: code, Name: rec[2], Active: active})
			return nil
		})
	return out, err
}

// readCSV reads name and hands each record to fn with its fields reordered
// to match columns. Extra columns are ignored.
func readCSV(fsys fs.FS, name string, columns []string, fn func([]string) error) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read %s header: %w", name, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	positions := make([]int, len(columns))
	for i, c := range columns {
		pos, ok := index[c]
		if !ok {
			return fmt.Errorf("%s: missing column %s", name, c)
		}
		positions[i] = pos
	}

	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
		fields := make([]string, len(columns))
		for i, pos := range positions {
			fields[i] = strings.TrimSpace(rec[pos])
		}
		if err := fn(fields); err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
}

func parseFlag(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "true", "s", "sim":
		return true, nil
	case "0", "false", "n", "nao", "não", "":
		return false, nil
	}
	return false, fmt.Errorf("in_ativo %q is not a flag", v)
}
