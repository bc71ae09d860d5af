package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tallyup-dev/tallyup/internal/model"
)

// Source is the read-only view the classification pipeline consumes. The
// pipeline never mutates rule data; lifecycle belongs to category and
// merchant management.
type Source interface {
	ListCategories() ([]model.Category, error)
	ListEnabledCategoryRules() ([]model.CategoryRule, error)
	ListEnabledMerchantAliases() ([]model.MerchantAlias, error)
}

// Store keeps categories, category rules and merchant aliases as JSON
// files under the data root.
type Store struct {
	dataRoot string
	now      func() int64 // epoch millis, swappable in tests
}

// NewStore creates a Store rooted at dataRoot.
func NewStore(dataRoot string) *Store {
	return &Store{
		dataRoot: dataRoot,
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

const (
	categoriesFile = "categories.json"
	rulesFile      = "rules.json"
	aliasesFile    = "aliases.json"
)

// ListCategories returns all categories in creation order.
func (s *Store) ListCategories() ([]model.Category, error) {
	var cats []model.Category
	if err := s.load(categoriesFile, &cats); err != nil {
		return nil, err
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].CreatedAt < cats[j].CreatedAt })
	return cats, nil
}

// ListEnabledCategoryRules returns enabled rules in creation order.
func (s *Store) ListEnabledCategoryRules() ([]model.CategoryRule, error) {
	all, err := s.listRules()
	if err != nil {
		return nil, err
	}
	var enabled []model.CategoryRule
	for _, r := range all {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}
	return enabled, nil
}

// ListEnabledMerchantAliases returns enabled aliases in creation order.
func (s *Store) ListEnabledMerchantAliases() ([]model.MerchantAlias, error) {
	all, err := s.listAliases()
	if err != nil {
		return nil, err
	}
	var enabled []model.MerchantAlias
	for _, a := range all {
		if a.Enabled {
			enabled = append(enabled, a)
		}
	}
	return enabled, nil
}

// AddCategory creates a category. Names are unique.
func (s *Store) AddCategory(name string, ctype model.CategoryType, color string) (model.Category, error) {
	cats, err := s.ListCategories()
	if err != nil {
		return model.Category{}, err
	}
	for _, c := range cats {
		if c.Name == name {
			return model.Category{}, fmt.Errorf("category %q already exists", name)
		}
	}
	cat := model.Category{
		ID:        nextCategoryID(cats),
		Name:      name,
		Type:      ctype,
		Color:     color,
		CreatedAt: s.now(),
	}
	cats = append(cats, cat)
	if err := s.save(categoriesFile, cats); err != nil {
		return model.Category{}, err
	}
	return cat, nil
}

// DeleteCategory removes a category and cascades to its rules.
func (s *Store) DeleteCategory(id int) error {
	cats, err := s.ListCategories()
	if err != nil {
		return err
	}
	kept := cats[:0]
	found := false
	for _, c := range cats {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("category %d not found", id)
	}
	if err := s.save(categoriesFile, kept); err != nil {
		return err
	}

	rls, err := s.listRules()
	if err != nil {
		return err
	}
	keptRules := rls[:0]
	for _, r := range rls {
		if r.CategoryID != id {
			keptRules = append(keptRules, r)
		}
	}
	return s.save(rulesFile, keptRules)
}

// AddRule creates a category rule.
func (s *Store) AddRule(pattern, flags string, categoryID int, enabled bool) (model.CategoryRule, error) {
	if flags == "" {
		flags = "i"
	}
	rls, err := s.listRules()
	if err != nil {
		return model.CategoryRule{}, err
	}
	rule := model.CategoryRule{
		ID:         nextRuleID(rls),
		Pattern:    pattern,
		Flags:      flags,
		CategoryID: categoryID,
		Enabled:    enabled,
		CreatedAt:  s.now(),
	}
	rls = append(rls, rule)
	if err := s.save(rulesFile, rls); err != nil {
		return model.CategoryRule{}, err
	}
	return rule, nil
}

// AddAlias creates a merchant alias.
func (s *Store) AddAlias(pattern, flags, canonicalName string, enabled bool) (model.MerchantAlias, error) {
	if flags == "" {
		flags = "i"
	}
	all, err := s.listAliases()
	if err != nil {
		return model.MerchantAlias{}, err
	}
	alias := model.MerchantAlias{
		ID:            nextAliasID(all),
		Pattern:       pattern,
		Flags:         flags,
		CanonicalName: canonicalName,
		Enabled:       enabled,
		CreatedAt:     s.now(),
	}
	all = append(all, alias)
	if err := s.save(aliasesFile, all); err != nil {
		return model.MerchantAlias{}, err
	}
	return alias, nil
}

func (s *Store) listRules() ([]model.CategoryRule, error) {
	var rls []model.CategoryRule
	if err := s.load(rulesFile, &rls); err != nil {
		return nil, err
	}
	sort.SliceStable(rls, func(i, j int) bool { return rls[i].CreatedAt < rls[j].CreatedAt })
	return rls, nil
}

func (s *Store) listAliases() ([]model.MerchantAlias, error) {
	var all []model.MerchantAlias
	if err := s.load(aliasesFile, &all); err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt < all[j].CreatedAt })
	return all, nil
}

func (s *Store) load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dataRoot, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func (s *Store) save(name string, v any) error {
	if err := os.MkdirAll(s.dataRoot, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dataRoot, name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func nextCategoryID(cats []model.Category) int {
	max := 0
	for _, c := range cats {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

func nextRuleID(rls []model.CategoryRule) int {
	max := 0
	for _, r := range rls {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

func nextAliasID(all []model.MerchantAlias) int {
	max := 0
	for _, a := range all {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}
