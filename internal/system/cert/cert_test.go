/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relieflink/cachestore/internal/system/config"
)

// writeKeyPair writes a self-signed certificate and its key under dir.
func writeKeyPair(t *testing.T, dir string) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "server.cert"),
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "server.key"),
		pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0o600))
}

func TestGetTLSConfig(t *testing.T) {
	home := t.TempDir()
	writeKeyPair(t, home)

	tlsConfig, err := GetTLSConfig(config.SecurityConfig{CertFile: "server.cert", KeyFile: "server.key"}, home)

	require.NoError(t, err)
	assert.Len(t, tlsConfig.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), tlsConfig.MinVersion)
}

func TestGetTLSConfigAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	writeKeyPair(t, dir)

	_, err := GetTLSConfig(config.SecurityConfig{
		CertFile: filepath.Join(dir, "server.cert"),
		KeyFile:  filepath.Join(dir, "server.key"),
	}, "/does/not/matter")

	assert.NoError(t, err)
}

func TestGetTLSConfigErrors(t *testing.T) {
	home := t.TempDir()

	_, err := GetTLSConfig(config.SecurityConfig{}, home)
	assert.ErrorContains(t, err, "must be configured")

	_, err = GetTLSConfig(config.SecurityConfig{CertFile: "missing.cert", KeyFile: "missing.key"}, home)
	assert.ErrorContains(t, err, "certificate file not found")

	require.NoError(t, os.WriteFile(filepath.Join(home, "bad.cert"), []byte("not a certificate"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(home, "bad.key"), []byte("not a key"), 0o600))
	_, err = GetTLSConfig(config.SecurityConfig{CertFile: "bad.cert", KeyFile: "bad.key"}, home)
	assert.ErrorContains(t, err, "failed to load the key pair")
}
