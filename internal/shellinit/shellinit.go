// Package shellinit generates the shell wrapper function `wt shell init <shell>`
// prints for the user to eval in their rc file. The wrapper is what lets
// `wt cd`/`wt new`/`wt switch` change the calling shell's own working
// directory: wt itself is a child process and can never do that on its
// own, so it emits a directive over stdout that the wrapper consumes.
package shellinit

import "fmt"

// Shell identifies a supported shell dialect.
type Shell string

const (
	Bash Shell = "bash"
	Zsh  Shell = "zsh"
	Fish Shell = "fish"
	Pwsh Shell = "pwsh"
)

// Supported lists the shells wt shell init accepts.
var Supported = []Shell{Bash, Zsh, Fish, Pwsh}

// Generate returns the integration script for shell, or an error for an
// unrecognized one.
func Generate(shell Shell) (string, error) {
	switch shell {
	case Bash, Zsh:
		return posixWrapper, nil
	case Fish:
		return fishWrapper, nil
	case Pwsh:
		return pwshWrapper, nil
	default:
		return "", fmt.Errorf("unsupported shell %q", shell)
	}
}

// posixWrapper works for both bash and zsh: both support `read -d ''` to
// read a NUL-delimited record, and both treat `command wt` the same way.
const posixWrapper = `# worktrunk shell integration
# Add this to your shell rc file: eval "$(wt shell init bash)"  (or zsh)

wt() {
  export WORKTRUNK_SHELL_ACTIVE=1
  local __wt_out
  __wt_out=$(command wt "$@")
  local __wt_status=$?
  if [ $__wt_status -ne 0 ]; then
    printf '%s\n' "$__wt_out"
    return $__wt_status
  fi

  local __wt_rec
  while IFS= read -r -d '' __wt_rec; do
    case "$__wt_rec" in
      __WORKTRUNK_CD__*)
        cd "${__wt_rec#__WORKTRUNK_CD__}" || return 1
        ;;
      __WORKTRUNK_EXEC__*)
        eval "${__wt_rec#__WORKTRUNK_EXEC__}"
        ;;
      *)
        printf '%s\n' "$__wt_rec"
        ;;
    esac
  done <<EOF_WT
$__wt_out
EOF_WT
  return 0
}
`

const fishWrapper = `# worktrunk shell integration
# Add this to your config.fish: wt shell init fish | source

function wt
    set -gx WORKTRUNK_SHELL_ACTIVE 1
    set -l out (command wt $argv)
    set -l status_code $status
    if test $status_code -ne 0
        printf '%s\n' $out
        return $status_code
    end
    for rec in $out
        switch $rec
            case '__WORKTRUNK_CD__*'
                cd (string sub -s 17 $rec)
            case '__WORKTRUNK_EXEC__*'
                eval (string sub -s 19 $rec)
            case '*'
                printf '%s\n' $rec
        end
    end
end
`

const pwshWrapper = `# worktrunk shell integration
# Add this to your $PROFILE: wt shell init pwsh | Out-String | Invoke-Expression

function wt {
    $env:WORKTRUNK_SHELL_ACTIVE = "1"
    $out = & (Get-Command -CommandType Application wt) @args
    $code = $LASTEXITCODE
    if ($code -ne 0) {
        $out | Write-Output
        return
    }
    foreach ($rec in ($out -split "` + "`" + `0")) {
        if ($rec -eq "") { continue }
        if ($rec.StartsWith("__WORKTRUNK_CD__")) {
            Set-Location $rec.Substring(16)
        } elseif ($rec.StartsWith("__WORKTRUNK_EXEC__")) {
            Invoke-Expression $rec.Substring(18)
        } else {
            Write-Output $rec
        }
    }
}
`
