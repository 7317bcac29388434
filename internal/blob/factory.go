package blob

import (
	"context"
	"fmt"
	"os"
)

// Open selects a backend using environment variables. Defaults to the
// filesystem driver when unset.
//
//	EPICORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	EPICORE_BLOB_FS_ROOT: filesystem root (default ./reportdata)
//	EPICORE_BLOB_S3_*: see OpenS3FromEnv
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("EPICORE_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFSStore(os.Getenv("EPICORE_BLOB_FS_ROOT"))
	case DriverS3:
		return OpenS3FromEnv(ctx)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
