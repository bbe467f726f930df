// dbcontainer.go
//
// A support desk service for firms, products and their tickets
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of helpdesk.
// helpdesk is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// helpdesk is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with helpdesk.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package dbcontainer starts a throwaway MariaDB, MySQL or PostgreSQL container
// for integration tests and local development.
package dbcontainer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/localnerve/helpdesk/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Options describe the database container to start
type Options struct {
	DBType       string // mariadb, mysql or postgres
	Image        string
	Database     string
	User         string
	Password     string
	RootPassword string
	// HostPort pins the container port to a local port. Empty picks a random one.
	HostPort string
}

// OptionsFromEnv reads DB_TYPE, DB_IMAGE, DB_DATABASE, DB_USER, DB_PASSWORD,
// DB_ROOT_PASSWORD and DB_HOST_PORT
func OptionsFromEnv() Options {
	return Options{
		DBType:       os.Getenv("DB_TYPE"),
		Image:        os.Getenv("DB_IMAGE"),
		Database:     os.Getenv("DB_DATABASE"),
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		RootPassword: os.Getenv("DB_ROOT_PASSWORD"),
		HostPort:     os.Getenv("DB_HOST_PORT"),
	}
}

// DBContainer is a running database container
type DBContainer struct {
	Container testcontainers.Container
	Host      string
	Port      nat.Port
	opts      Options
}

// Start runs the container and waits until the database accepts connections
func Start(ctx context.Context, opts Options) (*DBContainer, error) {
	if opts.Image == "" {
		return nil, fmt.Errorf("no image configured for %q", opts.DBType)
	}
	env, containerPort, err := initEnv(opts)
	if err != nil {
		return nil, err
	}

	tcpPort, err := nat.NewPort("tcp", containerPort)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	if exists, err := imageExists(ctx, opts.Image); err != nil {
		slog.WarnContext(ctx, "could not list local images", "error", err)
	} else if !exists {
		slog.InfoContext(ctx, "image not present locally, pulling", "image", opts.Image)
	}

	hostConfigModifier := func(hostConfig *container.HostConfig) {
		if opts.HostPort != "" {
			hostConfig.PortBindings = nat.PortMap{
				tcpPort: []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: opts.HostPort}},
			}
		}
		hostConfig.AutoRemove = true
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:              opts.Image,
			ExposedPorts:       []string{string(tcpPort)},
			Env:                env,
			HostConfigModifier: hostConfigModifier,
			WaitingFor:         waitStrategy(opts.DBType, tcpPort),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", opts.DBType, err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, tcpPort)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	slog.InfoContext(ctx, "database container started", "type", opts.DBType, "host", host, "port", mapped.Port())
	return &DBContainer{Container: c, Host: host, Port: mapped, opts: opts}, nil
}

// Config returns an application config pointing at the container
func (d *DBContainer) Config() *config.Config {
	return &config.Config{
		Port:              "3000",
		DBType:            d.opts.DBType,
		DBHost:            d.Host,
		DBPort:            d.Port.Port(),
		DBDatabase:        d.opts.Database,
		DBUser:            d.opts.User,
		DBPassword:        d.opts.Password,
		DBConnectionLimit: 5,
		DBLogLevel:        "warn",
		LogLevel:          "info",
		LogFormat:         "text",
		SeedLookups:       true,
		BcryptCost:        4,
	}
}

// Terminate stops and removes the container
func (d *DBContainer) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

func initEnv(opts Options) (map[string]string, string, error) {
	switch opts.DBType {
	case "postgres", "postgresql":
		return map[string]string{
			"POSTGRES_PASSWORD": opts.Password,
			"POSTGRES_USER":     opts.User,
			"POSTGRES_DB":       opts.Database,
		}, "5432", nil
	case "mariadb", "mysql":
		root := opts.RootPassword
		if root == "" {
			root = opts.Password
		}
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": root,
			"MYSQL_DATABASE":      opts.Database,
			"MYSQL_USER":          opts.User,
			"MYSQL_PASSWORD":      opts.Password,
		}, "3306", nil
	}
	return nil, "", fmt.Errorf("unsupported container database type: %q", opts.DBType)
}

func waitStrategy(dbType string, port nat.Port) wait.Strategy {
	listening := wait.ForListeningPort(port).WithStartupTimeout(90 * time.Second)
	if dbType == "postgres" || dbType == "postgresql" {
		// postgres listens once during init and restarts, so wait for the second ready line
		return wait.ForAll(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90*time.Second),
			listening,
		)
	}
	return listening
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}
	return false, nil
}

// Enabled reports whether container tests should run: the image is set and
// HELPDESK_CONTAINER_TESTS is not false
func Enabled(opts Options) bool {
	if opts.Image == "" {
		return false
	}
	if v, err := strconv.ParseBool(os.Getenv("HELPDESK_CONTAINER_TESTS")); err == nil && !v {
		return false
	}
	return true
}
