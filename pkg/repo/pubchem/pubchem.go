package pubchem

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/repo"
)

// weight accepts PubChem's molecular weight both as a JSON string (the
// current API) and as a number.
type weight float64

func (w *weight) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*w = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*w = weight(v)
	return nil
}

type property struct {
	Title            string `json:"Title"`
	MolecularFormula string `json:"MolecularFormula"`
	MolecularWeight  weight `json:"MolecularWeight"`
	IUPACName        string `json:"IUPACName"`
}

type PropertyResponse struct {
	PropertyTable struct {
		Properties []property `json:"Properties"`
	} `json:"PropertyTable"`
}

type pubchemImpl struct {
	client *resty.Client
}

func NewPubChemRepo(baseURL string, timeout time.Duration) repo.PubChemRepo {
	return &pubchemImpl{
		client: resty.New().
			SetTimeout(timeout).
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json"),
	}
}

func (p *pubchemImpl) GetCompound(ctx context.Context, name string) (*repo.CompoundInfo, error) {
	properties := "Title,MolecularFormula,MolecularWeight,IUPACName"
	urlPath := "/rest/pug/compound/name/{name}/property/{props}/JSON"

	propResp := &PropertyResponse{}
	res, err := p.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"props": properties,
			"name":  name,
		}).
		SetResult(propResp).
		Get(urlPath)
	if err != nil {
		logger.Errorf(ctx, "Failed to request properties from PubChem: %v", err)
		return nil, code.RPCHttpErr.WithErr(err)
	}

	switch res.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, code.CompoundNotFound.WithMsgf("compound %q not found in PubChem", name)
	default:
		return nil, code.RPCHttpCodeErr.WithMsgf("PubChem property query failed: status %d", res.StatusCode())
	}

	if len(propResp.PropertyTable.Properties) == 0 {
		return nil, code.CompoundNotFound.WithMsgf("compound %q not found in PubChem", name)
	}

	propData := propResp.PropertyTable.Properties[0]

	title := propData.Title
	if title == "" {
		title = propData.IUPACName
	}

	return &repo.CompoundInfo{
		Name:             title,
		MolecularFormula: propData.MolecularFormula,
		MolecularWeight:  float64(propData.MolecularWeight),
	}, nil
}
