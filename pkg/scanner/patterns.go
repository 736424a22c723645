package scanner

import (
	"regexp"
	"strings"
)

// DefaultPatterns returns the default dangerous patterns to detect in npm lifecycle scripts
func DefaultPatterns() []Pattern {
	return []Pattern{
		// Network activity
		{
			Name:        "curl_invocation",
			Category:    CategoryNetwork,
			Pattern:     regexp.MustCompile(`(?i)\bcurl\s`),
			Description: "Downloads or posts data with curl during install",
		},
		{
			Name:        "wget_invocation",
			Category:    CategoryNetwork,
			Pattern:     regexp.MustCompile(`(?i)\bwget\s`),
			Description: "Downloads data with wget during install",
		},
		{
			Name:        "fetch_call",
			Category:    CategoryNetwork,
			Pattern:     regexp.MustCompile(`(?i)\bfetch\s*\(`),
			Description: "Makes HTTP requests via fetch()",
		},
		{
			Name:        "http_url",
			Category:    CategoryNetwork,
			Pattern:     regexp.MustCompile(`(?i)https?://`),
			Description: "Embeds a hardcoded HTTP URL",
		},
		{
			Name:        "node_http_client",
			Category:    CategoryNetwork,
			Pattern:     regexp.MustCompile(`(?i)https?\.(get|request)\s*\(`),
			Description: "Uses the Node.js http/https client",
		},
		{
			Name:        "raw_socket",
			Category:    CategoryNetwork,
			Pattern:     regexp.MustCompile(`(?i)dns\.lookup|net\.connect|net\.socket`),
			Description: "Low-level network or DNS access, common in exfiltration and reverse shells",
		},
		// Filesystem mutation
		{
			Name:        "fs_write",
			Category:    CategoryFilesystem,
			Pattern:     regexp.MustCompile(`(?i)fs\.write|writeFile|appendFile`),
			Description: "Writes files - enables persistent backdoors",
		},
		{
			Name:        "fs_read",
			Category:    CategoryFilesystem,
			Pattern:     regexp.MustCompile(`(?i)fs\.read|readFileSync|readdir`),
			Description: "Reads files outside the package directory",
		},
		{
			Name:        "recursive_delete",
			Category:    CategoryFilesystem,
			Pattern:     regexp.MustCompile(`(?i)rm\s+-[a-z]*r[a-z]*f|rimraf\s+/`),
			Description: "Recursive forced deletion",
		},
		{
			Name:        "chmod_executable",
			Category:    CategoryFilesystem,
			Pattern:     regexp.MustCompile(`(?i)chmod\s+(\+x|7[0-7]{2})`),
			Description: "Marks a dropped file executable",
		},
		// Shell / process execution
		{
			Name:        "child_process",
			Category:    CategoryExec,
			Pattern:     regexp.MustCompile(`(?i)child_process`),
			Description: "Spawns processes via the child_process module",
		},
		{
			Name:        "exec_call",
			Category:    CategoryExec,
			Pattern:     regexp.MustCompile(`(?i)\bexec(Sync)?\s*\(`),
			Description: "Executes shell commands",
		},
		{
			Name:        "spawn_call",
			Category:    CategoryExec,
			Pattern:     regexp.MustCompile(`(?i)\bspawn(Sync)?\s*\(`),
			Description: "Spawns a subprocess",
		},
		{
			Name:        "pipe_to_shell",
			Category:    CategoryExec,
			Pattern:     regexp.MustCompile(`(?i)\|\s*(ba|z)?sh\b`),
			Description: "Pipes downloaded content into a shell",
		},
		{
			Name:        "node_eval_flag",
			Category:    CategoryExec,
			Pattern:     regexp.MustCompile(`(?i)node\s+(-e|--eval)\s`),
			Description: "Runs inline JavaScript via node -e",
		},
		// Environment / credential access
		{
			Name:        "process_env",
			Category:    CategoryCredential,
			Pattern:     regexp.MustCompile(`(?i)process\.env`),
			Description: "Reads environment variables - leaks CI tokens and cloud keys",
		},
		{
			Name:        "env_dump",
			Category:    CategoryCredential,
			Pattern:     regexp.MustCompile(`(?i)\bprintenv\b|\benv\s*\|`),
			Description: "Dumps the full environment",
		},
		{
			Name:        "ssh_keys",
			Category:    CategoryCredential,
			Pattern:     regexp.MustCompile(`(?i)\.ssh\b|id_rsa|id_ed25519`),
			Description: "Touches SSH key material",
		},
		{
			Name:        "npm_token",
			Category:    CategoryCredential,
			Pattern:     regexp.MustCompile(`(?i)\.npmrc|_authToken`),
			Description: "Touches npm auth configuration",
		},
		{
			Name:        "cloud_credentials",
			Category:    CategoryCredential,
			Pattern:     regexp.MustCompile(`(?i)\.aws/credentials|AWS_SECRET|AWS_ACCESS_KEY`),
			Description: "Touches cloud provider credentials",
		},
		{
			Name:        "github_token_heuristic",
			Category:    CategoryCredential,
			Pattern:     regexp.MustCompile(`(?i)github.{0,20}token`),
			Description: "References a GitHub token by name",
		},
		{
			Name:        "api_key_heuristic",
			Category:    CategoryCredential,
			Pattern:     regexp.MustCompile(`(?i)api.{0,12}key`),
			Description: "References an API key by name",
		},
		// Obfuscation primitives
		{
			Name:        "eval_call",
			Category:    CategoryObfuscation,
			Pattern:     regexp.MustCompile(`(?i)\beval\s*\(`),
			Description: "Dynamic code execution via eval()",
		},
		{
			Name:        "function_constructor",
			Category:    CategoryObfuscation,
			Pattern:     regexp.MustCompile(`new\s+Function\s*\(|\bFunction\s*\(`),
			Description: "Dynamic function construction",
		},
		{
			Name:        "base64_decode",
			Category:    CategoryObfuscation,
			Pattern:     regexp.MustCompile(`(?i)base64|atob\s*\(`),
			Description: "Base64 decoding hides payloads from review",
		},
		{
			Name:        "hex_escapes",
			Category:    CategoryObfuscation,
			Pattern:     regexp.MustCompile(`(?i)(\\x[0-9a-f]{2}){2,}|(\\u[0-9a-f]{4}){2,}`),
			Description: "Hex/unicode escape sequences obscure strings from scanners",
		},
		// Crypto-wallet terms
		{
			Name:        "wallet_terms",
			Category:    CategoryWallet,
			Pattern:     regexp.MustCompile(`(?i)\bwallet\b|metamask|seed\s*phrase`),
			Description: "References crypto wallets",
		},
		{
			Name:        "chain_terms",
			Category:    CategoryWallet,
			Pattern:     regexp.MustCompile(`(?i)ethereum|bitcoin|\bweb3\b`),
			Description: "References blockchain assets",
		},
		// Known malware file names (Shai-Hulud campaign bootstrap files)
		{
			Name:        "shai_hulud_bun_env",
			Category:    CategoryMalwareFile,
			Pattern:     regexp.MustCompile(`(?i)bun_environment\.js`),
			Description: "Known Shai-Hulud v2 bootstrap file name",
		},
		{
			Name:        "shai_hulud_setup_bun",
			Category:    CategoryMalwareFile,
			Pattern:     regexp.MustCompile(`(?i)setup_bun\.js`),
			Description: "Known Shai-Hulud v2 loader file name",
		},
		{
			Name:        "shai_hulud_marker",
			Category:    CategoryMalwareFile,
			Pattern:     regexp.MustCompile(`(?i)sha1[-_]?hulud`),
			Description: "Known Shai-Hulud campaign marker string",
		},
	}
}

// ParseCustomPatterns parses a comma-separated string of patterns into a slice of Pattern objects
// The patterns are treated as regex strings
func ParseCustomPatterns(patternsStr string) []Pattern {
	if strings.TrimSpace(patternsStr) == "" {
		return []Pattern{}
	}

	patterns := []Pattern{}
	for _, p := range strings.Split(patternsStr, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			if regex, err := regexp.Compile(p); err == nil {
				patterns = append(patterns, Pattern{
					Name:        p,
					Category:    CategoryCustom,
					Pattern:     regex,
					Description: "Custom dangerous pattern",
				})
			}
		}
	}
	return patterns
}
