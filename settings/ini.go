package settings

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// IniStore keeps settings as top-level keys of an INI file. List values are
// written as repeated keys.
type IniStore struct {
	path string
}

func NewIniStore(path string) *IniStore {
	return &IniStore{path: path}
}

func (s *IniStore) Path() string {
	return s.path
}

func (s *IniStore) load() (*ini.File, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		Loose:                   true,
		AllowShadows:            true,
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
		KeyValueDelimiters:      "=",
	}, s.path)
	if err != nil {
		return nil, unavailable(err)
	}
	return f, nil
}

func (s *IniStore) save(f *ini.File) error {
	if err := ensureDir(s.path); err != nil {
		return err
	}
	if err := f.SaveTo(s.path); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *IniStore) GetBoolean(key string) (bool, error) {
	f, err := s.load()
	if err != nil {
		return false, err
	}

	k, err := f.Section("").GetKey(key)
	if err != nil {
		return defaultBoolean(key), nil
	}

	v, err := k.Bool()
	if err != nil {
		return false, unavailable(fmt.Errorf("invalid boolean for %s: %w", key, err))
	}
	return v, nil
}

func (s *IniStore) GetString(key string) (string, error) {
	f, err := s.load()
	if err != nil {
		return "", err
	}

	k, err := f.Section("").GetKey(key)
	if err != nil {
		return DefaultString(key), nil
	}
	return k.String(), nil
}

func (s *IniStore) GetStringList(key string) ([]string, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}

	k, err := f.Section("").GetKey(key)
	if err != nil {
		return []string{}, nil
	}
	return compact(k.ValueWithShadows()), nil
}

func (s *IniStore) SetBoolean(key string, value bool) error {
	return s.SetString(key, fmt.Sprintf("%t", value))
}

func (s *IniStore) SetString(key, value string) error {
	f, err := s.load()
	if err != nil {
		return err
	}

	sec := f.Section("")
	sec.DeleteKey(key)
	if _, err := sec.NewKey(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return s.save(f)
}

func (s *IniStore) SetStringList(key string, values []string) error {
	f, err := s.load()
	if err != nil {
		return err
	}

	sec := f.Section("")
	sec.DeleteKey(key)

	values = compact(values)
	if len(values) > 0 {
		k, err := sec.NewKey(key, values[0])
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
		for _, v := range values[1:] {
			if err := k.AddShadow(v); err != nil {
				return fmt.Errorf("failed to append to %s: %w", key, err)
			}
		}
	}
	return s.save(f)
}
