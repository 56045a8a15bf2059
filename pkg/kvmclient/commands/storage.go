package commands

import (
	"context"
	"encoding/json"
)

// GetVirtualMediaState returns the current virtual-media mount state.
func GetVirtualMediaState(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getVirtualMediaState", struct{}{})
}

// MountWithHTTP mounts a virtual media image streamed from a URL.
func MountWithHTTP(ctx context.Context, c Caller, url, mode string) (json.RawMessage, error) {
	return call(ctx, c, "mountWithHTTP", map[string]string{"url": url, "mode": mode})
}

// MountWithStorage mounts a virtual media image already on appliance storage.
func MountWithStorage(ctx context.Context, c Caller, filename, mode string) (json.RawMessage, error) {
	return call(ctx, c, "mountWithStorage", map[string]string{"filename": filename, "mode": mode})
}

// UnmountImage unmounts the currently mounted virtual media image.
func UnmountImage(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "unmountImage", struct{}{})
}

// ListStorageFiles lists files on appliance storage.
func ListStorageFiles(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "listStorageFiles", struct{}{})
}

// GetStorageSpace returns appliance storage usage.
func GetStorageSpace(ctx context.Context, c Caller) (json.RawMessage, error) {
	return call(ctx, c, "getStorageSpace", struct{}{})
}

// DeleteStorageFile deletes a file from appliance storage.
func DeleteStorageFile(ctx context.Context, c Caller, filename string) (json.RawMessage, error) {
	return call(ctx, c, "deleteStorageFile", map[string]string{"filename": filename})
}

// StartStorageFileUpload begins an upload of size bytes under filename.
func StartStorageFileUpload(ctx context.Context, c Caller, filename string, size uint64) (json.RawMessage, error) {
	return call(ctx, c, "startStorageFileUpload", map[string]any{"filename": filename, "size": size})
}
