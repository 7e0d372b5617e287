// Diffreview sends a diff plus review instructions to an LLM and prints the
// model's review.
//
// Usage:
//
//	diffreview review file change.diff          # review a diff file
//	git diff | diffreview review file -         # review stdin
//	diffreview review staged --pro              # staged changes, stronger model
//	diffreview review range origin/main..HEAD --save
//	diffreview serve --addr :8787               # HTTP + WebSocket service
//	diffreview models list
//
// API keys come from --api-key or the provider's environment variable
// (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY). They are never written
// to the config file.
package main
