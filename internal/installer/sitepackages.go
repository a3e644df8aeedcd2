package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// sitePackagesQuery asks the interpreter for its purelib directory, which
// is where nopkg places installed modules.
const sitePackagesQuery = "import sysconfig; print(sysconfig.get_path('purelib'))"

// SitePackagesDir queries a Python interpreter for its site-packages
// directory. The caller bounds the subprocess with the context.
func SitePackagesDir(ctx context.Context, pythonExe string) (string, error) {
	cmd := exec.CommandContext(ctx, pythonExe, "-c", sitePackagesQuery)

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to query %s for site-packages: %w", pythonExe, err)
	}

	dir := strings.TrimSpace(string(out))
	if dir == "" {
		return "", fmt.Errorf("%s reported an empty site-packages path", pythonExe)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("site-packages directory %s is not accessible: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("site-packages path %s is not a directory", dir)
	}

	return dir, nil
}
