package settings

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// TOMLStore keeps settings as top-level keys of a TOML document.
type TOMLStore struct {
	path string
}

func NewTOMLStore(path string) *TOMLStore {
	return &TOMLStore{path: path}
}

func (s *TOMLStore) Path() string {
	return s.path
}

func (s *TOMLStore) load() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil // missing file means all defaults
		}
		return nil, unavailable(err)
	}

	values := map[string]any{}
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, unavailable(fmt.Errorf("parsing %s: %w", s.path, err))
	}
	return values, nil
}

func (s *TOMLStore) update(fn func(values map[string]any)) error {
	values, err := s.load()
	if err != nil {
		return err
	}

	fn(values)

	data, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := ensureDir(s.path); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *TOMLStore) GetBoolean(key string) (bool, error) {
	values, err := s.load()
	if err != nil {
		return false, err
	}

	raw, ok := values[key]
	if !ok {
		return defaultBoolean(key), nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, unavailable(fmt.Errorf("%s is not a boolean", key))
	}
	return v, nil
}

func (s *TOMLStore) GetString(key string) (string, error) {
	values, err := s.load()
	if err != nil {
		return "", err
	}

	raw, ok := values[key]
	if !ok {
		return DefaultString(key), nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", unavailable(fmt.Errorf("%s is not a string", key))
	}
	return v, nil
}

func (s *TOMLStore) GetStringList(key string) ([]string, error) {
	values, err := s.load()
	if err != nil {
		return nil, err
	}

	raw, ok := values[key]
	if !ok {
		return []string{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, unavailable(fmt.Errorf("%s is not a list", key))
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, unavailable(fmt.Errorf("%s contains a non-string value", key))
		}
		out = append(out, str)
	}
	return compact(out), nil
}

func (s *TOMLStore) SetBoolean(key string, value bool) error {
	return s.update(func(values map[string]any) {
		values[key] = value
	})
}

func (s *TOMLStore) SetString(key, value string) error {
	return s.update(func(values map[string]any) {
		values[key] = value
	})
}

func (s *TOMLStore) SetStringList(key string, values []string) error {
	return s.update(func(m map[string]any) {
		m[key] = compact(values)
	})
}
