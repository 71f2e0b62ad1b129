// services/geography.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"boacompra-loader/data"
	"boacompra-loader/models"

	"github.com/rs/zerolog"
)

type RegionGenerator struct{}

func (RegionGenerator) Table() string       { return models.TableRegion }
func (RegionGenerator) DependsOn() []string { return nil }

func (RegionGenerator) Generate(ctx context.Context, s *Seeder) (Rows, error) {
	states, err := data.ReadStates(s.refs)
	if err != nil {
		return Rows{}, err
	}
	return rowsOf(buildRegions(states, s.settings.ActorID)), nil
}

func buildRegions(states []data.State, actorID int64) []models.Region {
	rows := make([]models.Region, 0, len(states))
	for _, st := range states {
		rows = append(rows, models.Region{
			Code:         st.Code,
			Abbreviation: st.Abbreviation,
			Name:         st.Name,
			Audit:        models.NewAudit(actorID),
		})
	}
	return rows
}

type MunicipalityGenerator struct{}

func (MunicipalityGenerator) Table() string       { return models.TableMunicipality }
func (MunicipalityGenerator) DependsOn() []string { return []string{models.TableRegion} }

func (MunicipalityGenerator) Generate(ctx context.Context, s *Seeder) (Rows, error) {
	cities, err := data.ReadCities(s.refs)
	if err != nil {
		return Rows{}, err
	}
	regions, err := s.loadRegionRefs(ctx)
	if err != nil {
		return Rows{}, err
	}
	rows, invalid := buildMunicipalities(cities, regions, s.settings.ActorID)
	if len(invalid) > 0 {
		zerolog.Ctx(ctx).Error().Strs("abbreviations", invalid).Msg("Invalid region abbreviations in cities file")
		return Rows{}, fmt.Errorf("%w: region abbreviations %s", ErrUnresolvedReference, strings.Join(invalid, ", "))
	}
	return rowsOf(rows), nil
}

// buildMunicipalities resolves every city against the loaded regions. When
// any abbreviation is unknown it returns no rows and the sorted distinct
// unknown abbreviations.
func buildMunicipalities(cities []data.City, regions []models.RegionRef, actorID int64) ([]models.Municipality, []string) {
	byAbbreviation := make(map[string]int64, len(regions))
	for _, r := range regions {
		byAbbreviation[strings.ToUpper(r.Abbreviation)] = r.ID
	}

	rows := make([]models.Municipality, 0, len(cities))
	unknown := map[string]struct{}{}
	for _, c := range cities {
		regionID, ok := byAbbreviation[c.StateAbbreviation]
		if !ok {
			unknown[c.StateAbbreviation] = struct{}{}
			continue
		}
		rows = append(rows, models.Municipality{
			RegionID: regionID,
			IBGECode: c.IBGECode,
			Name:     c.Name,
			Active:   c.Active,
			Audit:    models.NewAudit(actorID),
		})
	}
	if len(unknown) == 0 {
		return rows, nil
	}
	invalid := make([]string, 0, len(unknown))
	for abbr := range unknown {
		invalid = append(invalid, abbr)
	}
	sort.Strings(invalid)
	return nil, invalid
}
