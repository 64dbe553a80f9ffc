// Package constants holds fixed values shared across deadwood's packages.
package constants

const (
	// ToolName is the name of this tool.
	ToolName = "deadwood"

	// ConfigFileName is the default app config file name.
	ConfigFileName = ".deadwood.yaml"

	// EnvVarPrefix is the prefix for environment variables.
	EnvVarPrefix = "DEADWOOD"

	// TrashDirName is where `deadwood clean` moves deleted paths.
	TrashDirName = ".deadwood_trash"
)

// SourceExtensions are the JS/TS extensions considered source files.
var SourceExtensions = []string{"js", "jsx", "ts", "tsx", "mjs", "cjs"}

// AssetExtensions are extensions considered non-source assets.
var AssetExtensions = []string{
	"png", "jpg", "jpeg", "gif", "webp", "avif", "svg", "ico", "bmp", "tiff",
	"mp4", "webm", "mp3", "wav", "ogg",
	"woff", "woff2", "ttf", "otf", "eot",
	"pdf", "txt",
	"css", "scss", "sass", "less",
}

// LocalExistingExtensions is the broader extension set used by
// local_specifier_exists, beyond source extensions: json plus every
// asset extension.
var LocalExistingExtensions = func() []string {
	exts := append([]string{}, SourceExtensions...)
	exts = append(exts, "json")
	exts = append(exts, AssetExtensions...)
	return exts
}()

// IgnoredDirNames are directory names never descended into by the scanner.
var IgnoredDirNames = []string{
	"node_modules", ".git", TrashDirName, "dist", "build", "coverage",
	"target", ".next", "out",
}

// AssetQuerySuffixes are bundler query suffixes appended to asset
// references when generating literal-match candidates.
var AssetQuerySuffixes = []string{"?react", "?url", "?raw", "?inline", "?component"}

// NextAppRouteFiles are the Next.js `app/` router file stems treated as entries.
var NextAppRouteFiles = []string{
	"page", "layout", "route", "loading", "error", "not-found", "template", "default", "head",
}

// TSConfigSeedNames are the filenames probed for project configuration.
var TSConfigSeedNames = []string{
	"tsconfig.json", "jsconfig.json", "tsconfig.app.json", "tsconfig.base.json",
}

// CommonConfigFileNames are well-known tool config files excluded from
// unused_files under the low-confidence filter.
var CommonConfigFileNames = []string{
	"vite.config.js", "vite.config.ts", "webpack.config.js", "webpack.config.ts",
	"jest.config.js", "jest.config.ts", "rollup.config.js", "rollup.config.ts",
	"babel.config.js", "babel.config.ts", "postcss.config.js", "postcss.config.ts",
	"tailwind.config.js", "tailwind.config.ts", "next.config.js", "next.config.ts",
	"vitest.config.js", "vitest.config.ts", "eslint.config.js", "eslint.config.ts",
}
