package stubserver

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/painel-dev/painelctl/internal/auth"
	"github.com/painel-dev/painelctl/internal/models"
)

// SeedFile is the YAML fixture format for seeding admins and profiles.
type SeedFile struct {
	Admins []struct {
		Email string `yaml:"email"`
		Senha string `yaml:"senha"`
		Name  string `yaml:"name"`
		Role  string `yaml:"role"`
	} `yaml:"admins"`
	Profiles []struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Permissions []string `yaml:"permissions"`
	} `yaml:"profiles"`
}

// defaultSeed keeps a fresh stub usable without any fixture file.
var defaultSeed = SeedFile{
	Admins: []struct {
		Email string `yaml:"email"`
		Senha string `yaml:"senha"`
		Name  string `yaml:"name"`
		Role  string `yaml:"role"`
	}{
		{Email: "admin@painel.local", Senha: "admin", Name: "Local Admin", Role: "admin"},
	},
	Profiles: []struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Permissions []string `yaml:"permissions"`
	}{
		{Name: "Full access", Description: "Unrestricted panel access", Permissions: []string{"*"}},
	},
}

// Seed populates the database from a YAML fixture, or from the built-in
// default when no path is given. Existing records are left alone, so seeding
// is idempotent across restarts.
func Seed(db *gorm.DB, path string, log zerolog.Logger) error {
	seed := defaultSeed

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read seed file: %w", err)
		}
		seed = SeedFile{}
		if err := yaml.Unmarshal(data, &seed); err != nil {
			return fmt.Errorf("failed to parse seed file: %w", err)
		}
	}

	for _, a := range seed.Admins {
		var count int64
		if err := db.Model(&models.Admin{}).Where("email = ?", a.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check admin %s: %w", a.Email, err)
		}
		if count > 0 {
			continue
		}

		senhaHash, err := auth.HashPassword(a.Senha)
		if err != nil {
			return err
		}

		role := a.Role
		if role == "" {
			role = "admin"
		}

		admin := &models.Admin{
			Email:     a.Email,
			SenhaHash: senhaHash,
			Name:      a.Name,
			Role:      role,
		}
		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin %s: %w", a.Email, err)
		}
		log.Info().Str("email", a.Email).Msg("Seeded admin")
	}

	for _, p := range seed.Profiles {
		var count int64
		if err := db.Model(&models.AccessProfile{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check profile %s: %w", p.Name, err)
		}
		if count > 0 {
			continue
		}

		profile := &models.AccessProfile{
			Name:        p.Name,
			Description: p.Description,
			Permissions: strings.Join(p.Permissions, ","),
		}
		if err := db.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile %s: %w", p.Name, err)
		}
		log.Info().Str("name", p.Name).Msg("Seeded access profile")
	}

	return nil
}
