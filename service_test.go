package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderIndexConfig(t *testing.T) {
	rendered, err := renderIndexConfig("bench-wikipedia-zstd-64", IndexConfig{
		Algorithm:   "zstd",
		BlockSizeKB: 64,
		DocMapping:  docMappingWikipedia,
	})
	require.Nil(t, err)

	var config map[string]any
	require.Nil(t, yaml.Unmarshal(rendered, &config))
	require.Equal(t, "bench-wikipedia-zstd-64", config["index_id"])

	settings := config["indexing_settings"].(map[string]any)
	require.Equal(t, "zstd", settings["docstore_compression"])
	require.Equal(t, 65536, settings["docstore_blocksize"])

	mapping := config["doc_mapping"].(map[string]any)
	require.Equal(t, true, mapping["store_source"])
	require.NotEmpty(t, mapping["field_mappings"])
}

func TestRenderIndexConfigBadMapping(t *testing.T) {
	_, err := renderIndexConfig("bench-x", IndexConfig{DocMapping: ":\n  - not yaml"})
	require.NotNil(t, err)
}

func TestEmbeddedDocMappings(t *testing.T) {
	for _, mapping := range []string{
		docMappingHdfsLogs,
		docMappingNginxLogs,
		docMappingGhArchive,
		docMappingWikipedia,
	} {
		var parsed map[string]any
		require.Nil(t, yaml.Unmarshal([]byte(mapping), &parsed))
		require.NotEmpty(t, parsed["field_mappings"])
		require.Equal(t, true, parsed["store_source"])
	}
}
