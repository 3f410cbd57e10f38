package installation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Permissions mirrors the bitflags the platform grants a bot.
type Permissions struct {
	Chat      uint32 `json:"chat"`
	Community uint32 `json:"community"`
	Message   uint32 `json:"message"`
}

type Installation struct {
	Location              string         `json:"location" gorm:"column:location;primaryKey"`
	APIGateway            string         `json:"api_gateway" gorm:"column:api_gateway;not null"`
	CommandPermissions    datatypes.JSON `json:"command_permissions" gorm:"column:command_permissions"`
	AutonomousPermissions datatypes.JSON `json:"autonomous_permissions" gorm:"column:autonomous_permissions"`
	InstalledAt           time.Time      `json:"installed_at" gorm:"column:installed_at"`
}

func (Installation) TableName() string {
	return "installations"
}

func New(location, apiGateway string, command, autonomous Permissions) (*Installation, error) {
	cmd, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command permissions: %w", err)
	}
	auto, err := json.Marshal(autonomous)
	if err != nil {
		return nil, fmt.Errorf("failed to encode autonomous permissions: %w", err)
	}
	i := &Installation{
		Location:              location,
		APIGateway:            apiGateway,
		CommandPermissions:    datatypes.JSON(cmd),
		AutonomousPermissions: datatypes.JSON(auto),
		InstalledAt:           time.Now().UTC(),
	}
	return i, i.Validate()
}

func (i *Installation) Validate() error {
	if i.Location == "" {
		return fmt.Errorf("location is required")
	}
	if i.APIGateway == "" {
		return fmt.Errorf("api gateway is required")
	}
	return nil
}

func (i *Installation) Autonomous() (Permissions, error) {
	var p Permissions
	if len(i.AutonomousPermissions) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(i.AutonomousPermissions, &p); err != nil {
		return p, fmt.Errorf("failed to decode autonomous permissions: %w", err)
	}
	return p, nil
}

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=installation_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Save(ctx context.Context, installation *Installation) error
	Get(ctx context.Context, location string) (*Installation, error)
	Delete(ctx context.Context, location string) error
}
