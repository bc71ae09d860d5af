package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tallyup-dev/tallyup/internal/model"
)

// ErrBadFormat reports a structurally invalid rules or aliases payload.
// Imports validate the top-level shape before mutating anything.
var ErrBadFormat = errors.New("unrecognized export format")

// FormatVersion is the exchange format version.
const FormatVersion = 1

type exportCategory struct {
	Name      string             `json:"name"`
	Type      model.CategoryType `json:"type"`
	Color     string             `json:"color,omitempty"`
	CreatedAt int64              `json:"createdAt"`
}

type exportRule struct {
	Pattern      string `json:"pattern"`
	Flags        string `json:"flags,omitempty"`
	Enabled      bool   `json:"enabled"`
	CreatedAt    int64  `json:"createdAt"`
	CategoryName string `json:"categoryName"`
}

type exportAlias struct {
	Pattern       string `json:"pattern"`
	Flags         string `json:"flags,omitempty"`
	CanonicalName string `json:"canonicalName"`
	Enabled       bool   `json:"enabled"`
	CreatedAt     int64  `json:"createdAt"`
}

// ExportRules writes categories and their rules as versioned JSON, with
// rules referencing categories by name so the payload is portable across
// stores with different internal IDs.
func (s *Store) ExportRules(w io.Writer, exportedAt int64) error {
	cats, err := s.ListCategories()
	if err != nil {
		return err
	}
	rls, err := s.listRules()
	if err != nil {
		return err
	}

	nameByID := make(map[int]string, len(cats))
	outCats := make([]exportCategory, 0, len(cats))
	for _, c := range cats {
		nameByID[c.ID] = c.Name
		outCats = append(outCats, exportCategory{Name: c.Name, Type: c.Type, Color: c.Color, CreatedAt: c.CreatedAt})
	}
	outRules := make([]exportRule, 0, len(rls))
	for _, r := range rls {
		outRules = append(outRules, exportRule{
			Pattern:      r.Pattern,
			Flags:        r.Flags,
			Enabled:      r.Enabled,
			CreatedAt:    r.CreatedAt,
			CategoryName: nameByID[r.CategoryID],
		})
	}

	payload := struct {
		Version    int              `json:"version"`
		Categories []exportCategory `json:"categories"`
		Rules      []exportRule     `json:"rules"`
		ExportedAt int64            `json:"exportedAt"`
	}{FormatVersion, outCats, outRules, exportedAt}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("writing rules export: %w", err)
	}
	return nil
}

// ImportRules upserts categories by name (updating type and color), then
// rules by (categoryName, pattern) pair (updating flags and enabled).
// Entries missing required fields are skipped; rules naming an unknown
// category are skipped. A payload without both arrays is rejected whole.
func (s *Store) ImportRules(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading rules import: %w", err)
	}

	var payload struct {
		Categories json.RawMessage `json:"categories"`
		Rules      json.RawMessage `json:"rules"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if payload.Categories == nil || payload.Rules == nil {
		return ErrBadFormat
	}
	var inCats []struct {
		Name  string             `json:"name"`
		Type  model.CategoryType `json:"type"`
		Color string             `json:"color"`
	}
	var inRules []struct {
		Pattern      string `json:"pattern"`
		Flags        string `json:"flags"`
		Enabled      *bool  `json:"enabled"`
		CategoryName string `json:"categoryName"`
	}
	if err := json.Unmarshal(payload.Categories, &inCats); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if err := json.Unmarshal(payload.Rules, &inRules); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	cats, err := s.ListCategories()
	if err != nil {
		return err
	}
	idByName := make(map[string]int, len(cats))
	for _, c := range cats {
		idByName[c.Name] = c.ID
	}

	for _, in := range inCats {
		if in.Name == "" || in.Type == "" {
			continue
		}
		if cid, ok := idByName[in.Name]; ok {
			for i := range cats {
				if cats[i].ID == cid {
					cats[i].Type = in.Type
					cats[i].Color = in.Color
				}
			}
		} else {
			cat := model.Category{
				ID:        nextCategoryID(cats),
				Name:      in.Name,
				Type:      in.Type,
				Color:     in.Color,
				CreatedAt: s.now(),
			}
			cats = append(cats, cat)
			idByName[cat.Name] = cat.ID
		}
	}
	if err := s.save(categoriesFile, cats); err != nil {
		return err
	}

	rls, err := s.listRules()
	if err != nil {
		return err
	}
	for _, in := range inRules {
		if in.Pattern == "" || in.CategoryName == "" {
			continue
		}
		cid, ok := idByName[in.CategoryName]
		if !ok {
			continue
		}
		flags := in.Flags
		if flags == "" {
			flags = "i"
		}
		enabled := true
		if in.Enabled != nil {
			enabled = *in.Enabled
		}
		updated := false
		for i := range rls {
			if rls[i].CategoryID == cid && rls[i].Pattern == in.Pattern {
				rls[i].Flags = flags
				rls[i].Enabled = enabled
				updated = true
				break
			}
		}
		if !updated {
			rls = append(rls, model.CategoryRule{
				ID:         nextRuleID(rls),
				Pattern:    in.Pattern,
				Flags:      flags,
				CategoryID: cid,
				Enabled:    enabled,
				CreatedAt:  s.now(),
			})
		}
	}
	return s.save(rulesFile, rls)
}

// ExportAliases writes merchant aliases as versioned JSON.
func (s *Store) ExportAliases(w io.Writer, exportedAt int64) error {
	all, err := s.listAliases()
	if err != nil {
		return err
	}
	out := make([]exportAlias, 0, len(all))
	for _, a := range all {
		out = append(out, exportAlias{
			Pattern:       a.Pattern,
			Flags:         a.Flags,
			CanonicalName: a.CanonicalName,
			Enabled:       a.Enabled,
			CreatedAt:     a.CreatedAt,
		})
	}
	payload := struct {
		Version    int           `json:"version"`
		Aliases    []exportAlias `json:"aliases"`
		ExportedAt int64         `json:"exportedAt"`
	}{FormatVersion, out, exportedAt}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("writing aliases export: %w", err)
	}
	return nil
}

// ImportAliases upserts aliases by the (canonicalName, pattern, flags)
// triple, updating only enabled on conflict.
func (s *Store) ImportAliases(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading aliases import: %w", err)
	}

	var payload struct {
		Aliases json.RawMessage `json:"aliases"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if payload.Aliases == nil {
		return ErrBadFormat
	}
	var in []struct {
		Pattern       string `json:"pattern"`
		Flags         string `json:"flags"`
		CanonicalName string `json:"canonicalName"`
		Enabled       *bool  `json:"enabled"`
	}
	if err := json.Unmarshal(payload.Aliases, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	all, err := s.listAliases()
	if err != nil {
		return err
	}
	for _, a := range in {
		if a.Pattern == "" || a.CanonicalName == "" {
			continue
		}
		flags := a.Flags
		if flags == "" {
			flags = "i"
		}
		enabled := true
		if a.Enabled != nil {
			enabled = *a.Enabled
		}
		updated := false
		for i := range all {
			existingFlags := all[i].Flags
			if existingFlags == "" {
				existingFlags = "i"
			}
			if all[i].CanonicalName == a.CanonicalName && all[i].Pattern == a.Pattern && existingFlags == flags {
				all[i].Enabled = enabled
				updated = true
				break
			}
		}
		if !updated {
			all = append(all, model.MerchantAlias{
				ID:            nextAliasID(all),
				Pattern:       a.Pattern,
				Flags:         flags,
				CanonicalName: a.CanonicalName,
				Enabled:       enabled,
				CreatedAt:     s.now(),
			})
		}
	}
	return s.save(aliasesFile, all)
}
