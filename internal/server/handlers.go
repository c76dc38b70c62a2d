package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"bakkey/internal/crypto"
	"bakkey/internal/domain"
	"bakkey/internal/services/keyring"
)

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(domain.HealthResponse{Status: "ok"})
}

func (s *Server) panelRecipient(c *fiber.Ctx) error {
	r, err := s.deps.Identity.Recipient()
	if err != nil {
		return err
	}
	return c.JSON(domain.RecipientResponse{AgeRecipient: r})
}

// generate returns a fresh key. With ?track=true the recipient is also added
// to the keyring as unsaved so a later confirm can mark it saved.
func (s *Server) generate(c *fiber.Ctx) error {
	key, err := s.deps.Backups.Generate(c.UserContext())
	if err != nil {
		return err
	}
	s.metrics.generated.Inc()

	resp := domain.GenerateResponse{Mnemonic: key.Mnemonic, AgeRecipient: key.AgeRecipient}
	if c.QueryBool("track") {
		rec, err := s.deps.Keyring.Track(key)
		if err != nil {
			return err
		}
		resp.KeyID = rec.ID
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(resp)
}

func (s *Server) recoverRecipient(c *fiber.Ctx) error {
	var req domain.MnemonicRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequestf("invalid body: %v", err)
	}
	r, err := s.deps.Backups.WordsToAgeRecipient(c.UserContext(), crypto.ParseMnemonic(req.Mnemonic))
	if err != nil {
		return err
	}
	return c.JSON(domain.RecipientResponse{AgeRecipient: r})
}

func (s *Server) validate(c *fiber.Ctx) error {
	var req domain.ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequestf("invalid body: %v", err)
	}
	return c.JSON(domain.ValidateResponse{Valid: crypto.ValidateAgeRecipient(req.AgeRecipient)})
}

// restore opens a phrase encrypted to the panel, derives its recipient and
// reports whether that recipient is registered.
func (s *Server) restore(c *fiber.Ctx) error {
	var req domain.RestoreRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequestf("invalid body: %v", err)
	}
	if req.EncryptedMnemonicPhrase == "" {
		return BadRequestf("encrypted_mnemonic_phrase is required")
	}

	words, err := s.deps.Identity.OpenPhrase(req.EncryptedMnemonicPhrase)
	if err != nil {
		return err
	}
	r, err := s.deps.Backups.WordsToAgeRecipient(c.UserContext(), words)
	if err != nil {
		return err
	}
	rec, ok, err := s.deps.Keyring.Lookup(r)
	if err != nil {
		return err
	}
	s.metrics.restores.WithLabelValues(strconv.FormatBool(ok)).Inc()

	res := domain.RestoreResult{AgeRecipient: r, Registered: ok}
	if ok {
		res.KeyID = rec.ID
	}
	return c.JSON(res)
}

func (s *Server) listKeys(c *fiber.Ctx) error {
	keys, err := s.deps.Keyring.List()
	if err != nil {
		return err
	}
	return c.JSON(domain.KeyListResponse{Keys: keys})
}

func (s *Server) registerKey(c *fiber.Ctx) error {
	var req domain.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequestf("invalid body: %v", err)
	}
	rec, err := s.deps.Keyring.Register(c.UserContext(), domain.Registration{
		ID:       req.ID,
		Key:      req.Key,
		Mnemonic: crypto.ParseMnemonic(req.Mnemonic),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (s *Server) confirmKey(c *fiber.Ctx) error {
	var req domain.MnemonicRequest
	if err := c.BodyParser(&req); err != nil {
		return BadRequestf("invalid body: %v", err)
	}
	rec, err := s.deps.Keyring.Confirm(
		c.UserContext(),
		domain.KeyID(c.Params("id")),
		crypto.ParseMnemonic(req.Mnemonic),
	)
	if err != nil {
		return err
	}
	return c.JSON(rec)
}

func (s *Server) removeKey(c *fiber.Ctx) error {
	if err := s.deps.Keyring.Remove(domain.KeyID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) exportKeys(c *fiber.Ctx) error {
	format := c.Query("format", keyring.FormatJSON)
	out, err := s.deps.Keyring.Export(format)
	if err != nil {
		return err
	}
	switch format {
	case keyring.FormatTOML:
		c.Set(fiber.HeaderContentType, "application/toml")
	case keyring.FormatYAML:
		c.Set(fiber.HeaderContentType, "application/yaml")
	default:
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return c.Send(out)
}
