package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/inventory"
)

// Inventory file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatHCL  = "hcl"
)

// DetectFormat returns the inventory format for a file name based on its extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported inventory file %q (must be .json, .toml or .hcl)", filepath.Base(path))
}

// ReadJSON decodes a JSON inventory from r.
func ReadJSON(r io.Reader) (inventory.Inventory, error) {
	var inv inventory.Inventory
	if err := json.NewDecoder(r).Decode(&inv); err != nil {
		return inventory.Inventory{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json inventory")
	}
	return inv, nil
}

// ReadTOML decodes a TOML inventory from r.
func ReadTOML(r io.Reader) (inventory.Inventory, error) {
	var inv inventory.Inventory
	if _, err := toml.NewDecoder(r).Decode(&inv); err != nil {
		return inventory.Inventory{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml inventory")
	}
	return inv, nil
}

type hclInventory struct {
	Assets []hclAsset `hcl:"asset,block"`
	Links  []hclLink  `hcl:"link,block"`
}

type hclAsset struct {
	ID             string   `hcl:"id,label"`
	Title          string   `hcl:"title,optional"`
	Classification string   `hcl:"classification,optional"`
	Systems        []string `hcl:"systems,optional"`
	Groups         []string `hcl:"groups,optional"`
}

type hclLink struct {
	ID           string `hcl:"id,label"`
	From         string `hcl:"from"`
	To           string `hcl:"to"`
	Relationship string `hcl:"relationship,optional"`
}

// ReadHCL decodes an HCL inventory. The filename is used in diagnostics and
// must end in ".hcl".
func ReadHCL(filename string, src []byte) (inventory.Inventory, error) {
	var doc hclInventory
	if err := hclsimple.Decode(filename, src, nil, &doc); err != nil {
		return inventory.Inventory{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode hcl inventory")
	}

	inv := inventory.Inventory{
		Nodes: make([]inventory.Node, 0, len(doc.Assets)),
		Edges: make([]inventory.Edge, 0, len(doc.Links)),
	}
	for _, a := range doc.Assets {
		inv.Nodes = append(inv.Nodes, inventory.Node{
			ID:             a.ID,
			Title:          a.Title,
			Classification: a.Classification,
			Systems:        a.Systems,
			Groups:         a.Groups,
		})
	}
	for _, l := range doc.Links {
		inv.Edges = append(inv.Edges, inventory.Edge{
			ID:           l.ID,
			From:         l.From,
			To:           l.To,
			Relationship: l.Relationship,
		})
	}
	return inv, nil
}

// Decode decodes inventory data in the given format.
func Decode(data []byte, format string) (inventory.Inventory, error) {
	switch format {
	case FormatJSON, "":
		return ReadJSON(bytes.NewReader(data))
	case FormatTOML:
		return ReadTOML(bytes.NewReader(data))
	case FormatHCL:
		return ReadHCL("inventory.hcl", data)
	}
	return inventory.Inventory{}, errors.New(errors.ErrCodeInvalidFormat,
		"invalid inventory format: %q (must be one of: json, toml, hcl)", format)
}

// ImportFile reads an inventory file, choosing the decoder by extension.
func ImportFile(path string) (inventory.Inventory, error) {
	if err := errors.ValidatePath(path); err != nil {
		return inventory.Inventory{}, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return inventory.Inventory{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return inventory.Inventory{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "inventory %s", path)
	}
	if err != nil {
		return inventory.Inventory{}, fmt.Errorf("read %s: %w", path, err)
	}

	if format == FormatHCL {
		return ReadHCL(path, data)
	}
	return Decode(data, format)
}
