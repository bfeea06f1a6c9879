// backend/internal/platform/secret/secret.go
package secret

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Fetch reads one secret version from Secret Manager. The name must be a
// full resource path (projects/.../secrets/.../versions/...); a bare name
// gets "/versions/latest" appended.
func Fetch(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("secret: name is empty")
	}
	if !strings.Contains(name, "/versions/") {
		name = name + "/versions/latest"
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", errors.New("secret: client init failed: " + err.Error())
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("secret: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("secret: empty payload (" + name + ")")
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
