package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxContractFileSize est la taille maximale d'un fichier de contrat (10MB)
const MaxContractFileSize = 10 * 1024 * 1024

// ContractsBucket est le nom du conteneur des fichiers de contrats
const ContractsBucket = "contracts"

// Types MIME admis pour les fichiers de contrats
var allowedContractMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Extensions admises pour les fichiers de contrats
var allowedContractExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// StorageService gère le stockage des documents sur disque.
// Les fichiers sont rangés par conteneur puis par utilisateur:
// <racine>/<bucket>/<userID>/<horodatage>.<ext>
type StorageService struct {
	root string
}

// NewStorageService crée une nouvelle instance de StorageService
func NewStorageService(root string) *StorageService {
	return &StorageService{root: root}
}

// ValidateContractFile vérifie le type et la taille d'un fichier de contrat
func ValidateContractFile(fileName, mimeType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedContractMIMETypes[mimeType] && !allowedContractExtensions[ext] {
		return errors.New("veuillez sélectionner un fichier PDF ou Word (.pdf, .doc, .docx)")
	}
	if size > MaxContractFileSize {
		return errors.New("le fichier ne doit pas dépasser 10MB")
	}
	return nil
}

// BuildObjectKey construit la clé de stockage d'un fichier
func BuildObjectKey(userID uint, fileName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%d/%d%s", userID, now.UnixNano(), ext)
}

// Save enregistre un fichier sous la clé donnée et retourne son chemin relatif
func (s *StorageService) Save(bucket, key string, r io.Reader) (string, error) {
	relPath := filepath.Join(bucket, key)
	fullPath := filepath.Join(s.root, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("erreur de création du répertoire de stockage: %v", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("erreur de création du fichier: %v", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("erreur d'écriture du fichier: %v", err)
	}

	return relPath, nil
}

// Open ouvre un fichier stocké pour lecture
func (s *StorageService) Open(relPath string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.root, relPath))
	if err != nil {
		return nil, fmt.Errorf("fichier introuvable: %v", err)
	}
	return f, nil
}

// Delete supprime un fichier stocké
func (s *StorageService) Delete(relPath string) error {
	if err := os.Remove(filepath.Join(s.root, relPath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("erreur de suppression du fichier: %v", err)
	}
	return nil
}
