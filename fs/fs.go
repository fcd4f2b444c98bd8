package appfs

import "embed"

// FS embeds the database migrations and the email templates so that the
// binaries stay self-contained regardless of the working directory.
// Underscore-prefixed files are excluded by directory patterns, so the
// shared base templates are named explicitly.
//go:embed migrations assets
//go:embed assets/templates/email/_base.txt assets/templates/email/_base.gohtml
var FS embed.FS
