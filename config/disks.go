package config

import (
	"fmt"
	"time"

	fileoutput "github.com/shoraid/go-fileoutput"
	localdriver "github.com/shoraid/go-fileoutput/drivers/local"
	s3driver "github.com/shoraid/go-fileoutput/drivers/s3"
)

// NewManager builds every configured disk and returns a manager defaulting
// to cfg.DefaultDisk. Environment disks are registered as "local" and "s3";
// disks file entries may not reuse those aliases.
func NewManager(cfg Config) (fileoutput.Manager, error) {
	disks := make(map[string]fileoutput.Disk)

	if cfg.Local.Root != "" {
		d, err := localdriver.New(cfg.Local.Root, cfg.Local.URL)
		if err != nil {
			return nil, fmt.Errorf("disk %q: %w", DriverLocal, err)
		}
		disks[DriverLocal] = d
	}

	if cfg.S3.Bucket != "" {
		d, err := s3driver.NewObjectStorage(cfg.S3.objectStorageConfig(cfg.TemporaryURLExpiry))
		if err != nil {
			return nil, fmt.Errorf("disk %q: %w", DriverS3, err)
		}
		disks[DriverS3] = d
	}

	for alias, dc := range cfg.Disks {
		if _, exists := disks[alias]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDisk, alias)
		}

		d, err := dc.build(cfg.TemporaryURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("disk %q: %w", alias, err)
		}
		disks[alias] = d
	}

	if len(disks) == 0 {
		return nil, ErrNoDisks
	}

	if _, ok := disks[cfg.DefaultDisk]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingDefault, cfg.DefaultDisk)
	}

	return fileoutput.NewManager(cfg.DefaultDisk, disks)
}

func (s S3Disk) objectStorageConfig(expiry time.Duration) s3driver.ObjectStorageConfig {
	return s3driver.ObjectStorageConfig{
		Bucket:        s.Bucket,
		Region:        s.Region,
		AccessKey:     s.AccessKey,
		SecretKey:     s.SecretKey,
		Endpoint:      s.Endpoint,
		UseSSL:        s.UseSSL,
		Visibility:    s3driver.Visibility(s.Visibility),
		DefaultExpiry: expiry,
	}
}

func (dc DiskConfig) build(expiry time.Duration) (fileoutput.Disk, error) {
	switch dc.Driver {
	case DriverLocal:
		if dc.Root == "" {
			return nil, fmt.Errorf("%w: local disk needs a root", ErrInvalidDisk)
		}
		d, err := localdriver.New(dc.Root, dc.URL)
		if err != nil {
			return nil, err
		}
		return d, nil
	case DriverS3:
		useSSL := true
		if dc.UseSSL != nil {
			useSSL = *dc.UseSSL
		}
		visibility := dc.Visibility
		if visibility == "" {
			visibility = string(s3driver.VisibilityPrivate)
		}
		region := dc.Region
		if region == "" {
			region = "us-east-1"
		}
		d, err := s3driver.NewObjectStorage(S3Disk{
			Bucket:     dc.Bucket,
			Region:     region,
			AccessKey:  dc.AccessKey,
			SecretKey:  dc.SecretKey,
			Endpoint:   dc.Endpoint,
			UseSSL:     useSSL,
			Visibility: visibility,
		}.objectStorageConfig(expiry))
		if err != nil {
			return nil, err
		}
		return d, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, dc.Driver)
}
