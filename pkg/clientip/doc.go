// Package clientip extracts client addresses from HTTP requests.
//
// FromForwardedFor returns the first entry of X-Forwarded-For verbatim
// (trimmed), or an empty string. It is what the session gate records with a
// new session, so a missing header yields an empty client IP rather than a
// proxy address.
//
// GetIP is a best-effort resolver for logging. It checks, in order:
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (first valid entry)
//  4. X-Real-IP
//  5. RemoteAddr
//
// Header values must parse as IP addresses; 0.0.0.0 and :: are rejected.
package clientip
